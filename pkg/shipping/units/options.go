package units

import "github.com/delivro/shipcore/pkg/shipping"

// Option keys recognized by the typed accessors. Anything else in the bag is
// carrier-specific and flows through Raw untouched.
const (
	OptionCashOnDelivery = "cash_on_delivery"
	OptionCurrency       = "currency"
	OptionInsurance      = "insurance"
	OptionNotification   = "notification"
	OptionPrinting       = "printing"
)

// Options wraps a request option bag and exposes typed accessors for the
// shared option set. Accessors return nil (or "") when the key is absent or
// its value does not match the expected shape.
type Options struct {
	values map[string]interface{}
}

// NewOptions wraps an option bag. A nil map behaves like an empty one.
func NewOptions(values map[string]interface{}) Options {
	return Options{values: values}
}

var recognizedOptions = []string{
	OptionCashOnDelivery,
	OptionCurrency,
	OptionInsurance,
	OptionNotification,
	OptionPrinting,
}

// HasContent reports whether the bag holds at least one recognized option.
// A bag carrying only carrier-specific keys has no content.
func (o Options) HasContent() bool {
	for _, key := range recognizedOptions {
		if _, ok := o.values[key]; ok {
			return true
		}
	}
	return false
}

// Raw returns the underlying bag, unknown keys included.
func (o Options) Raw() map[string]interface{} {
	return o.values
}

// CashOnDelivery returns the structured cash-on-delivery option, if present.
func (o Options) CashOnDelivery() *shipping.CODOption {
	value, ok := o.values[OptionCashOnDelivery]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case shipping.CODOption:
		return &v
	case *shipping.CODOption:
		return v
	case map[string]interface{}:
		return &shipping.CODOption{
			Amount:   asFloat(v["amount"]),
			Currency: asString(v["currency"]),
		}
	case float64:
		return &shipping.CODOption{Amount: v}
	}
	return nil
}

// Currency returns the requested quoting currency, if present.
func (o Options) Currency() string {
	return asString(o.values[OptionCurrency])
}

// Insurance returns the structured insurance option, if present.
func (o Options) Insurance() *shipping.InsuranceOption {
	value, ok := o.values[OptionInsurance]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case shipping.InsuranceOption:
		return &v
	case *shipping.InsuranceOption:
		return v
	case map[string]interface{}:
		return &shipping.InsuranceOption{
			Amount:   asFloat(v["amount"]),
			Currency: asString(v["currency"]),
		}
	case float64:
		return &shipping.InsuranceOption{Amount: v}
	}
	return nil
}

// Notification returns the structured delivery-notification option, if
// present. A bare string value is treated as the notification email.
func (o Options) Notification() *shipping.NotificationOption {
	value, ok := o.values[OptionNotification]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case shipping.NotificationOption:
		return &v
	case *shipping.NotificationOption:
		return v
	case map[string]interface{}:
		return &shipping.NotificationOption{
			Email:  asString(v["email"]),
			Locale: asString(v["locale"]),
		}
	case string:
		return &shipping.NotificationOption{Email: v}
	}
	return nil
}

// Printing returns the requested label print format, if present.
func (o Options) Printing() string {
	return asString(o.values[OptionPrinting])
}

func asString(value interface{}) string {
	s, _ := value.(string)
	return s
}

func asFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
