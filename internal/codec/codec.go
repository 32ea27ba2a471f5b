// Package codec serializes a wallet to the on-disk text format and parses it
// back. The format is a single JSON-like object with three fields (owner,
// transactions, budgets) written and scanned by hand: records are recovered
// with a depth-tracking bracket scanner over raw bytes, not a structured
// parser, so the format's quirks stay bit-compatible: amounts carry exactly
// two decimals, absent category/note is an explicit null, and only quotes and
// backslashes are escaped inside text.
package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"finledger/internal/core"
)

// ErrCorruptData marks a blob the scanner could not recover a wallet from.
// Callers degrade to "no prior data" instead of crashing.
var ErrCorruptData = errors.New("corrupt wallet data")

// timeLayout is ISO-8601 without a timezone, matching the stored blobs.
const timeLayout = "2006-01-02T15:04:05"

// Encode renders w deterministically: transactions in recording order,
// budgets in insertion order, nothing re-sorted.
func Encode(w *core.Wallet) []byte {
	var b strings.Builder
	b.WriteString(`{"owner":"`)
	b.WriteString(escape(w.Owner))
	b.WriteString(`","transactions":[`)
	for i, t := range w.Transactions() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"id":"`)
		b.WriteString(escape(t.ID))
		b.WriteString(`","type":"`)
		b.WriteString(string(t.Type))
		b.WriteString(`","category":`)
		writeNullableString(&b, t.Category)
		b.WriteString(`,"amount":`)
		b.WriteString(t.Amount.String())
		b.WriteString(`,"note":`)
		writeNullableString(&b, t.Note)
		b.WriteString(`,"at":"`)
		b.WriteString(t.At.Format(timeLayout))
		b.WriteString(`"}`)
	}
	b.WriteString(`],"budgets":[`)
	for i, bd := range w.Budgets() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"category":"`)
		b.WriteString(escape(bd.Category))
		b.WriteString(`","limit":`)
		b.WriteString(bd.Limit.String())
		b.WriteString(`}`)
	}
	b.WriteString(`]}`)
	return []byte(b.String())
}

// Decode rebuilds login's wallet from blob. A missing transactions or budgets
// array is tolerated as empty; anything else malformed fails the whole load
// with ErrCorruptData, leaving the caller's in-memory state untouched.
func Decode(login string, blob []byte) (*core.Wallet, error) {
	s := string(blob)
	w := core.NewWallet(login)

	if txns, ok := extractArray(s, "transactions"); ok {
		for _, rec := range splitRecords(txns) {
			t, err := decodeTransaction(rec)
			if err != nil {
				return nil, err
			}
			w.AddTransaction(t)
		}
	}
	if buds, ok := extractArray(s, "budgets"); ok {
		for _, rec := range splitRecords(buds) {
			category, err := stringField(rec, "category")
			if err != nil {
				return nil, err
			}
			limit, err := moneyField(rec, "limit")
			if err != nil {
				return nil, err
			}
			w.SetBudget(category, limit)
		}
	}
	return w, nil
}

func decodeTransaction(rec string) (core.Transaction, error) {
	var t core.Transaction
	id, err := stringField(rec, "id")
	if err != nil {
		return t, err
	}
	typName, err := stringField(rec, "type")
	if err != nil {
		return t, err
	}
	typ := core.TxnType(typName)
	if !typ.Valid() {
		return t, fmt.Errorf("%w: unknown transaction type %q", ErrCorruptData, typName)
	}
	category, err := nullableStringField(rec, "category")
	if err != nil {
		return t, err
	}
	amount, err := moneyField(rec, "amount")
	if err != nil {
		return t, err
	}
	note, err := nullableStringField(rec, "note")
	if err != nil {
		return t, err
	}
	atRaw, err := stringField(rec, "at")
	if err != nil {
		return t, err
	}
	at, err := time.Parse(timeLayout, atRaw)
	if err != nil {
		return t, fmt.Errorf("%w: bad timestamp %q", ErrCorruptData, atRaw)
	}
	return core.Transaction{
		ID:       id,
		Type:     typ,
		Category: category,
		Amount:   amount,
		Note:     note,
		At:       at,
	}, nil
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func writeNullableString(b *strings.Builder, s string) {
	if s == "" {
		b.WriteString("null")
		return
	}
	b.WriteByte('"')
	b.WriteString(escape(s))
	b.WriteByte('"')
}

// extractArray returns the content between the brackets of `"key":[...]`,
// tracking bracket depth and skipping over quoted text so punctuation inside
// notes or categories cannot end the array early.
func extractArray(s, key string) (string, bool) {
	marker := `"` + key + `":[`
	i := strings.Index(s, marker)
	if i < 0 {
		return "", false
	}
	start := i + len(marker)
	depth := 1
	inStr := false
	for j := start; j < len(s); j++ {
		c := s[j]
		if inStr {
			if c == '\\' {
				j++
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start:j], true
			}
		}
	}
	return "", false
}

// splitRecords cuts array content into top-level `{...}` records by brace
// depth, again skipping quoted text.
func splitRecords(s string) []string {
	var out []string
	depth := 0
	start := 0
	inStr := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 {
				out = append(out, s[start:i+1])
			}
		}
	}
	return out
}

// locate finds the value position right after `"key":`. Key markers contain
// an unescaped quote, so they can never match inside escaped text fields.
func locate(obj, key string) (int, bool) {
	marker := `"` + key + `":`
	i := strings.Index(obj, marker)
	if i < 0 {
		return 0, false
	}
	return i + len(marker), true
}

func stringField(obj, key string) (string, error) {
	pos, ok := locate(obj, key)
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrCorruptData, key)
	}
	if pos >= len(obj) || obj[pos] != '"' {
		return "", fmt.Errorf("%w: field %q is not a string", ErrCorruptData, key)
	}
	return scanString(obj, pos)
}

// nullableStringField decodes absence and explicit null both to "".
func nullableStringField(obj, key string) (string, error) {
	pos, ok := locate(obj, key)
	if !ok {
		return "", nil
	}
	if strings.HasPrefix(obj[pos:], "null") {
		return "", nil
	}
	if obj[pos] != '"' {
		return "", fmt.Errorf("%w: field %q is neither string nor null", ErrCorruptData, key)
	}
	return scanString(obj, pos)
}

// scanString reads a quoted string starting at obj[pos] == '"', honoring
// backslash escapes, and returns the unescaped value.
func scanString(obj string, pos int) (string, error) {
	var b strings.Builder
	for i := pos + 1; i < len(obj); i++ {
		c := obj[i]
		if c == '\\' {
			if i+1 >= len(obj) {
				break
			}
			i++
			b.WriteByte(obj[i])
			continue
		}
		if c == '"' {
			return b.String(), nil
		}
		b.WriteByte(c)
	}
	return "", fmt.Errorf("%w: unterminated string", ErrCorruptData)
}

func moneyField(obj, key string) (core.Money, error) {
	pos, ok := locate(obj, key)
	if !ok {
		return core.Money{}, fmt.Errorf("%w: missing field %q", ErrCorruptData, key)
	}
	end := pos
	for end < len(obj) && strings.ContainsRune("0123456789.-", rune(obj[end])) {
		end++
	}
	cents, err := parseCents(obj[pos:end])
	if err != nil {
		return core.Money{}, fmt.Errorf("%w: bad number for %q: %q", ErrCorruptData, key, obj[pos:end])
	}
	return core.Money{Cents: cents}, nil
}

// parseCents reads a plain decimal with an optional sign into cents. Digits
// beyond the second decimal are dropped, the format never stores more than
// two.
func parseCents(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty number")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart, fracPart, found := strings.Cut(s, ".")
	if found && strings.Contains(fracPart, ".") {
		return 0, errors.New("multiple decimal points")
	}
	if intPart == "" && fracPart == "" {
		return 0, errors.New("no digits")
	}
	var cents int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, errors.New("bad digit")
		}
		cents = cents*10 + int64(r-'0')
	}
	cents *= 100
	if len(fracPart) > 0 {
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, errors.New("bad digit")
			}
		}
		cents += int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			cents += int64(fracPart[1] - '0')
		}
	}
	if neg {
		cents = -cents
	}
	return cents, nil
}
