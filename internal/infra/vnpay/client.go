package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/petspa-booking/internal/config"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
)

const (
	Version      = "2.1.0"
	CommandPay   = "pay"
	CurrencyVND  = "VND"
	LocaleVN     = "vn"
	OrderType    = "other"
	SuccessCode  = "00"
	expiry       = 15 * time.Minute
	dateLayout   = "20060102150405"
	gatewayZone  = "Asia/Ho_Chi_Minh"
	paramHash    = "vnp_SecureHash"
	paramHashTyp = "vnp_SecureHashType"
)

var (
	ErrNotConfigured = errors.New("vnpay is not configured")
	ErrInvalidAmount = errors.New("vnpay amount is not a number")
)

type Client struct {
	tmnCode   string
	secret    string
	payURL    string
	returnURL string
	clock     timezone.Clock
}

func New(cfg config.VNPayConfig, clock timezone.Clock) *Client {
	return &Client{
		tmnCode:   cfg.TmnCode,
		secret:    cfg.HashSecret,
		payURL:    cfg.PayURL,
		returnURL: cfg.ReturnURL,
		clock:     clock,
	}
}

type PaymentRequest struct {
	Amount    int64 // VND
	OrderInfo string
	ClientIP  string
	BankCode  string
}

type PaymentURL struct {
	URL       string
	TxnRef    string
	ExpiresAt time.Time
}

// BuildPaymentURL returns the signed redirect URL for one payment.
func (c *Client) BuildPaymentURL(req PaymentRequest) (*PaymentURL, error) {
	if c.tmnCode == "" || c.secret == "" {
		return nil, ErrNotConfigured
	}

	loc := timezone.Location(gatewayZone)
	created := c.clock.Now().In(loc)
	expires := created.Add(expiry)
	txnRef := strings.ReplaceAll(uuid.NewString(), "-", "")

	params := map[string]string{
		"vnp_Version":    Version,
		"vnp_Command":    CommandPay,
		"vnp_TmnCode":    c.tmnCode,
		"vnp_Amount":     strconv.FormatInt(req.Amount*100, 10),
		"vnp_CurrCode":   CurrencyVND,
		"vnp_TxnRef":     txnRef,
		"vnp_OrderInfo":  req.OrderInfo,
		"vnp_OrderType":  OrderType,
		"vnp_Locale":     LocaleVN,
		"vnp_ReturnUrl":  c.returnURL,
		"vnp_IpAddr":     req.ClientIP,
		"vnp_CreateDate": created.Format(dateLayout),
		"vnp_ExpireDate": expires.Format(dateLayout),
	}
	if req.BankCode != "" {
		params["vnp_BankCode"] = req.BankCode
	}

	query := Encode(params)
	signed := query + "&" + paramHash + "=" + Sign(c.secret, query)

	return &PaymentURL{
		URL:       c.payURL + "?" + signed,
		TxnRef:    txnRef,
		ExpiresAt: expires,
	}, nil
}

// Verify checks the signature of a callback parameter set.
func (c *Client) Verify(params map[string]string) bool {
	got := params[paramHash]
	if got == "" || c.secret == "" {
		return false
	}

	rest := make(map[string]string, len(params))
	for k, v := range params {
		if k == paramHash || k == paramHashTyp {
			continue
		}
		rest[k] = v
	}

	want := Sign(c.secret, Encode(rest))
	return hmac.Equal([]byte(strings.ToLower(got)), []byte(want))
}

// Encode joins params as key=value pairs sorted by key, with values
// query-escaped. Empty values are skipped.
func Encode(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// Sign is the lowercase hex HMAC-SHA512 of data.
func Sign(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// Callback is the subset of gateway callback fields the ledger uses.
type Callback struct {
	TxnRef        string
	TransactionNo string
	ResponseCode  string
	BankCode      string
	PayDate       string
	OrderInfo     string
	Amount        int64 // VND
}

func (cb Callback) Succeeded() bool {
	return cb.ResponseCode == SuccessCode
}

// TransactionID is the gateway transaction number, or the merchant
// reference when the gateway sent none.
func (cb Callback) TransactionID() string {
	if cb.TransactionNo != "" && cb.TransactionNo != "0" {
		return cb.TransactionNo
	}
	return cb.TxnRef
}

func ParseCallback(params map[string]string) (Callback, error) {
	cb := Callback{
		TxnRef:        params["vnp_TxnRef"],
		TransactionNo: params["vnp_TransactionNo"],
		ResponseCode:  params["vnp_ResponseCode"],
		BankCode:      params["vnp_BankCode"],
		PayDate:       params["vnp_PayDate"],
		OrderInfo:     params["vnp_OrderInfo"],
	}

	if raw := params["vnp_Amount"]; raw != "" {
		minor, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cb, ErrInvalidAmount
		}
		cb.Amount = minor / 100
	}
	return cb, nil
}

// Params flattens url.Values, keeping the first value of each key.
func Params(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
