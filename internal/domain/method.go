package domain

// Method represents a delivery method code.
type Method string

// List of delivery methods.
const (
	MethodDrive         Method = "DRIVE"          // store pickup, scheduled
	MethodDelivery      Method = "DELIVERY"       // standard delivery, scheduled
	MethodDeliveryToday Method = "DELIVERY_TODAY" // same-day delivery, today only
	MethodDeliveryASAP  Method = "DELIVERY_ASAP"  // express delivery, today only
)

// Methods returns all delivery methods in their canonical order.
// The order is stable: it drives both method listings and slot id encoding.
func Methods() [4]Method {
	return [4]Method{MethodDrive, MethodDelivery, MethodDeliveryToday, MethodDeliveryASAP}
}

// Valid checks if the Method is one of the known codes.
func (m Method) Valid() bool {
	for _, v := range Methods() {
		if m == v {
			return true
		}
	}
	return false
}

// DateFixed reports whether the method accepts only today's date.
func (m Method) DateFixed() bool {
	return m == MethodDeliveryToday || m == MethodDeliveryASAP
}

// MethodInfo carries the display attributes of a delivery method.
type MethodInfo struct {
	Code        Method
	Name        string
	Description string
}
