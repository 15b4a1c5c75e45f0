package platon

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// AmountData is the nested payload serialized into the signed "data" field.
// Field order is fixed because the gateway signs the exact byte sequence;
// the "0" key is how the recurring marker appears on the wire.
type AmountData struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Recurring   string `json:"0,omitempty"`
}

// Request is the outbound field set assembled before signing.
type Request struct {
	PaymentMethod string
	ReturnURL     string
	Language      string
	Data          AmountData
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	Order         string
}

// Sign serializes the amount data, computes the gateway signature and
// returns the flat field map to be POSTed to the gateway. The `data` field
// carries base64 of the compact JSON, and `key` carries the merchant id.
func (p *Provider) Sign(req Request) (map[string]string, error) {
	raw, err := encodeCompact(req.Data)
	if err != nil {
		return nil, fmt.Errorf("encode amount data: %w", err)
	}
	data := base64.StdEncoding.EncodeToString(raw)

	merchant := p.cfg.Config("merchant")
	sign := signPayload(merchant, req.PaymentMethod, data, req.ReturnURL, p.cfg.Config("password"))

	return map[string]string{
		"payment":    req.PaymentMethod,
		"url":        req.ReturnURL,
		"lang":       req.Language,
		"data":       data,
		"email":      req.Email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"phone":      req.Phone,
		"order":      req.Order,
		"key":        merchant,
		"sign":       sign,
	}, nil
}

// signPayload implements the gateway's outgoing signature: every component
// is byte-reversed before concatenation, then the whole string is
// upper-cased and MD5-hashed.
func signPayload(merchant, payment, data, url, password string) string {
	material := reverse(merchant) + reverse(payment) + reverse(data) + reverse(url) + reverse(password)
	return md5hex(strings.ToUpper(material))
}

// sign2 implements the callback signature. Unlike the outgoing formula only
// the email and the card-digit component are reversed; the password and the
// order reference are concatenated as-is. The asymmetry is the gateway's
// protocol, not a bug.
func (p *Provider) sign2(data *callbackPayload) string {
	material := reverse(data.Email) + p.cfg.Config("password") + data.Order + reverse(cardDigits(data.Card))
	return md5hex(strings.ToUpper(material))
}

// cardDigits extracts the first six and last four characters of the card
// string and concatenates them. Short strings contribute what they have,
// mirroring the gateway's own lenient slicing.
func cardDigits(card string) string {
	first := card
	if len(first) > 6 {
		first = first[:6]
	}
	last := card
	if len(last) > 4 {
		last = last[len(last)-4:]
	}
	return first + last
}

// reverse flips the raw bytes of s. The gateway's scheme is byte-oriented,
// so no rune or grapheme awareness is wanted here.
func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// encodeCompact marshals v to compact JSON without HTML escaping, matching
// the serialization the gateway signs against (slashes and non-ASCII kept
// literal).
func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
