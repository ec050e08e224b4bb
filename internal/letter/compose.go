package letter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/model"
)

const dateLayout = "January 2, 2006"

// Placeholders used when the underlying value is missing.
const (
	PlaceholderBank         = "<Bank Name>"
	PlaceholderCase         = "<Case Number>"
	PlaceholderTransaction  = "<Transaction ID>"
	PlaceholderTxDate       = "<Transaction Date>"
	PlaceholderCustomer     = "<Customer Name>"
	PlaceholderProduct      = "<Product>"
	PlaceholderOrderDate    = "<Order Date>"
	PlaceholderDeliveryDate = "<Delivery/Service Date>"
	PlaceholderAmount       = "<Amount>"
	PlaceholderDate         = "<Date>"
)

const (
	greeting         = "Dear Sir or Madam,"
	attachmentLeadIn = "Please find the following supporting documents attached:"
	closingRequest   = "Based on the evidence provided, we respectfully request that this chargeback be reversed and the funds returned to our account."
)

// Input is everything a cover letter is composed from. RefundStatus and
// DuplicateStatus override the case's own values when set.
type Input struct {
	Case            model.DisputeCase
	Account         model.AccountInfo
	BankName        *string
	RefundStatus    model.RefundStatus
	DuplicateStatus model.DuplicateStatus
	Today           time.Time
}

func (in Input) effectiveCase() model.DisputeCase {
	c := in.Case
	if in.RefundStatus != model.RefundUnset {
		c.RefundStatus = in.RefundStatus
	}
	if in.DuplicateStatus != model.DuplicateUnset {
		c.DuplicateStatus = in.DuplicateStatus
	}
	return c
}

// Attachments returns the lettered attachments Compose lists for in.
func (in Input) Attachments() []Attachment {
	return Attachments(in.effectiveCase())
}

// Compose builds the full cover letter. It is a pure function of in.
func Compose(in Input) string {
	c := in.effectiveCase()
	d := newDetails(c, in.BankName)

	sections := []string{
		header(in.Account, in.Today),
		recipient(d),
		greeting,
		body(c, d),
		closing(in.Account),
	}
	return strings.Join(sections, "\n\n")
}

func header(a model.AccountInfo, today time.Time) string {
	addr := a.Address
	date := PlaceholderDate
	if !today.IsZero() {
		date = today.Format(dateLayout)
	}
	lines := []string{
		a.Name,
		fmt.Sprintf("%s, %s, %s, %s %s, %s", addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country),
		a.SupportEmail,
		a.SupportPhone,
		date,
	}
	return strings.Join(lines, "\n")
}

func recipient(d details) string {
	return fmt.Sprintf("To: %s\nSubject: Chargeback Dispute – Case #%s", d.bank, d.caseNumber)
}

func closing(a model.AccountInfo) string {
	return "Thank you,\n" + a.Name
}

// details are the interpolated values, each already replaced by its
// placeholder when missing.
type details struct {
	bank            string
	caseNumber      string
	transactionID   string
	transactionDate string
	customerName    string
	product         string
	orderDate       string
	deliveryDate    string
	amount          string
}

func newDetails(c model.DisputeCase, bankName *string) details {
	return details{
		bank:            orPlaceholder(deref(bankName), PlaceholderBank),
		caseNumber:      orPlaceholder(c.ID, PlaceholderCase),
		transactionID:   orPlaceholder(c.Charge.ID, PlaceholderTransaction),
		transactionDate: formatDate(c.Charge.Created, PlaceholderTxDate),
		customerName:    customerName(c),
		product:         productDescription(c),
		orderDate:       orderDate(c),
		deliveryDate:    deliveryDate(c),
		amount:          formatAmount(c.Amount, c.Currency),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func formatDate(t time.Time, placeholder string) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format(dateLayout)
}

func customerName(c model.DisputeCase) string {
	if name := strings.TrimSpace(c.Charge.BillingDetails.Name); name != "" {
		return name
	}
	if name, ok := c.EvidenceText(string(evidence.KeyCustomerName)); ok {
		return name
	}
	return PlaceholderCustomer
}

func productDescription(c model.DisputeCase) string {
	if desc, ok := c.EvidenceText(string(evidence.KeyProductDescription)); ok {
		return desc
	}
	var names []string
	for _, item := range c.Charge.LineItems {
		if d := strings.TrimSpace(item.Description); d != "" {
			names = append(names, d)
		}
	}
	if len(names) > 0 {
		return strings.Join(names, ", ")
	}
	return PlaceholderProduct
}

func orderDate(c model.DisputeCase) string {
	if !c.Order.CreatedAt.IsZero() {
		return c.Order.CreatedAt.Format(dateLayout)
	}
	return formatDate(c.Charge.Created, PlaceholderOrderDate)
}

var evidenceDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

func deliveryDate(c model.DisputeCase) string {
	for _, key := range []evidence.Key{evidence.KeyShippingDate, evidence.KeyServiceDate} {
		raw, ok := c.EvidenceText(string(key))
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		for _, layout := range evidenceDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format(dateLayout)
			}
		}
		return raw
	}
	return PlaceholderDeliveryDate
}

func formatAmount(amount *int64, currency string) string {
	if amount == nil {
		return PlaceholderAmount
	}
	value := decimal.New(*amount, -2).StringFixed(2)
	return strings.TrimSpace(value + " " + strings.ToUpper(currency))
}
