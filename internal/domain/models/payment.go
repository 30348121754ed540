package models

type PaymentMethod string

const (
	MethodUPI        PaymentMethod = "upi"
	MethodCard       PaymentMethod = "card"
	MethodNetbanking PaymentMethod = "netbanking"
	MethodWallet     PaymentMethod = "wallet"
)

// PaymentDetails is the method plus its field bag, collected in the payment
// step. Nothing here is persisted past commit.
type PaymentDetails struct {
	Method  PaymentMethod     `json:"method"`
	Details map[string]string `json:"details"`
}

// PaymentField describes one required input of a payment method.
type PaymentField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// RequiredPaymentFields lists the inputs each method must provide.
var RequiredPaymentFields = map[PaymentMethod][]PaymentField{
	MethodUPI: {
		{Name: "upiId", Label: "UPI ID"},
	},
	MethodCard: {
		{Name: "cardNumber", Label: "Card Number"},
		{Name: "expiryDate", Label: "Expiry Date"},
		{Name: "cvv", Label: "CVV"},
		{Name: "name", Label: "Name on Card"},
	},
	MethodNetbanking: {
		{Name: "bank", Label: "Bank"},
	},
	MethodWallet: {
		{Name: "wallet", Label: "Wallet"},
	},
}
