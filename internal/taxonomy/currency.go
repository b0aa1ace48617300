package taxonomy

// Currency is the closed set of display currencies a user can pick.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyINR Currency = "INR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"

	DefaultCurrency = CurrencyINR
)

var CurrencyList = []string{
	string(CurrencyUSD),
	string(CurrencyEUR),
	string(CurrencyINR),
	string(CurrencyGBP),
	string(CurrencyJPY),
}

var allowedCurrencies = func() map[string]struct{} {
	out := make(map[string]struct{}, len(CurrencyList))
	for _, c := range CurrencyList {
		out[c] = struct{}{}
	}
	return out
}()

// IsCurrencyAllowed matches ISO codes exactly; "usd" is rejected.
func IsCurrencyAllowed(s string) bool {
	_, ok := allowedCurrencies[s]
	return ok
}

func (c Currency) Valid() bool {
	return IsCurrencyAllowed(string(c))
}

// Symbol returns the display symbol. Unknown currencies render with the
// default currency's symbol.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	case CurrencyJPY:
		return "¥"
	default:
		return "₹"
	}
}

// PDFPrefix is the amount prefix for documents rendered with the core PDF
// fonts, which have no glyph for the rupee sign.
func (c Currency) PDFPrefix() string {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY:
		return c.Symbol()
	default:
		return "Rs. "
	}
}
