package domain

// AccountMapping configures how a business event type is posted: which
// journal it lands in, which product/charge account carries it, and which
// prefix tags its pieces in printed references and exports. Piece numbers
// themselves are drawn per (journal code, fiscal year) so a piece reference
// identifies exactly one piece.
type AccountMapping struct {
	EventType      EventType `json:"eventType"` // Primary Key
	JournalCode    string    `json:"journalCode"`
	ProductAccount string    `json:"productAccount"`
	PiecePrefix    string    `json:"piecePrefix"`
	// OutflowAccount is the counterpart for outflow events (disposals).
	OutflowAccount  string  `json:"outflowAccount"`
	AnalyticSection *string `json:"analyticSection,omitempty"`
	AuditFields
}

// EncashmentAccount maps a payment method to the account that receives the
// money (cash drawer, bank, cheque remittance).
type EncashmentAccount struct {
	PaymentMethod PaymentMethod `json:"paymentMethod"` // Primary Key
	AccountNumber string        `json:"accountNumber"`
	JournalCode   *string       `json:"journalCode,omitempty"` // Overrides the mapping journal when set
	AuditFields
}

// Built-in mapping defaults, French association chart-of-accounts flavour.
// They keep the ledger usable with zero configuration: resolution fails
// open to these, never closed, because bookkeeping must not block
// day-to-day operations.
var defaultMappings = map[EventType]AccountMapping{
	EventMembershipPayment: {
		EventType:      EventMembershipPayment,
		JournalCode:    "VT",
		ProductAccount: "756000", // cotisations
		PiecePrefix:    "ADH",
	},
	EventInvoicePayment: {
		EventType:      EventInvoicePayment,
		JournalCode:    "VT",
		ProductAccount: "706000", // services rendered
		PiecePrefix:    "FAC",
	},
	EventInventoryDisposal: {
		EventType:      EventInventoryDisposal,
		JournalCode:    "OD",
		ProductAccount: "675000", // book value of disposed assets
		PiecePrefix:    "SOR",
		OutflowAccount: "215000", // equipment/collection asset account
	},
}

var defaultEncashments = map[PaymentMethod]EncashmentAccount{
	MethodCash:     {PaymentMethod: MethodCash, AccountNumber: "531000"},
	MethodCheque:   {PaymentMethod: MethodCheque, AccountNumber: "511200"},
	MethodCard:     {PaymentMethod: MethodCard, AccountNumber: "511500"},
	MethodTransfer: {PaymentMethod: MethodTransfer, AccountNumber: "512000"},
}

// DefaultMapping returns the built-in mapping for an event type.
func DefaultMapping(eventType EventType) (AccountMapping, bool) {
	m, ok := defaultMappings[eventType]
	return m, ok
}

// DefaultEncashmentAccount returns the built-in account for a payment method.
func DefaultEncashmentAccount(method PaymentMethod) (EncashmentAccount, bool) {
	e, ok := defaultEncashments[method]
	return e, ok
}
