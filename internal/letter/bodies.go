package letter

import (
	"fmt"
	"strings"

	"github.com/sprite-ai/rebuttal/internal/model"
)

func body(c model.DisputeCase, d details) string {
	var narrative []string
	switch c.Reason.Normalize() {
	case model.ReasonProductNotReceived:
		narrative = productNotReceivedBody(d)
	case model.ReasonCreditNotProcessed:
		narrative = creditNotProcessedBody(d, c.RefundStatus)
	case model.ReasonProductUnacceptable:
		narrative = productUnacceptableBody(d)
	case model.ReasonSubscriptionCanceled:
		narrative = subscriptionCanceledBody(d)
	case model.ReasonDuplicate:
		narrative = duplicateBody(d, c.DuplicateStatus)
	case model.ReasonFraudulent, model.ReasonUnrecognized:
		narrative = unrecognizedBody(d)
	default:
		narrative = defaultBody(d)
	}

	paragraphs := append(narrative,
		attachmentLeadIn+"\n\n"+CompileAttachments(c),
		closingRequest,
	)
	return strings.Join(paragraphs, "\n\n")
}

func intro(d details) string {
	return fmt.Sprintf(
		"We are writing to contest the chargeback (case #%s) raised by %s on transaction %s, dated %s, in the amount of %s.",
		d.caseNumber, d.customerName, d.transactionID, d.transactionDate, d.amount,
	)
}

func productNotReceivedBody(d details) []string {
	return []string{
		intro(d) + " The cardholder has stated that they did not receive their purchase.",
		fmt.Sprintf(
			"The customer ordered %s on %s, and the order was delivered on %s. "+
				"Our records show that it reached the customer as promised.",
			d.product, d.orderDate, d.deliveryDate,
		),
	}
}

func creditNotProcessedBody(d details, status model.RefundStatus) []string {
	if status == model.RefundNotOwed {
		return []string{
			intro(d) + " The cardholder has stated that a credit was not processed.",
			fmt.Sprintf(
				"The customer ordered %s on %s. Under our refund policy, which was shown to the customer "+
					"before purchase, this order is not eligible for a refund, and no credit is owed.",
				d.product, d.orderDate,
			),
		}
	}
	return []string{
		intro(d) + " The cardholder has stated that a credit was not processed.",
		fmt.Sprintf(
			"A refund for %s, ordered on %s, has already been issued to the customer in line with our "+
				"refund policy. The refund receipt is included with this response.",
			d.product, d.orderDate,
		),
	}
}

func productUnacceptableBody(d details) []string {
	return []string{
		intro(d) + " The cardholder has stated that the purchase was defective or not as described.",
		fmt.Sprintf(
			"The customer ordered %s on %s and received it on %s. The product matched the description "+
				"provided at the time of purchase, and the customer did not return it under our refund policy.",
			d.product, d.orderDate, d.deliveryDate,
		),
	}
}

func subscriptionCanceledBody(d details) []string {
	return []string{
		intro(d) + " The cardholder has stated that they canceled their subscription.",
		fmt.Sprintf(
			"Our records show the subscription for %s was still active when the charge of %s was made, "+
				"and we did not receive a cancellation request in line with our cancellation policy.",
			d.product, d.transactionDate,
		),
	}
}

func duplicateBody(d details, status model.DuplicateStatus) []string {
	if status == model.IsDuplicate {
		return []string{
			intro(d) + " The cardholder has stated that they were charged more than once.",
			fmt.Sprintf(
				"We confirm that transaction %s duplicated an earlier charge for %s, and it has already been "+
					"refunded in full. The cardholder has therefore not been charged twice.",
				d.transactionID, d.product,
			),
		}
	}
	return []string{
		intro(d) + " The cardholder has stated that they were charged more than once.",
		fmt.Sprintf(
			"Transaction %s is not a duplicate. It was a separate purchase of %s placed on %s, "+
				"distinct from any other charge to the cardholder.",
			d.transactionID, d.product, d.orderDate,
		),
	}
}

func unrecognizedBody(d details) []string {
	return []string{
		intro(d) + fmt.Sprintf(" %s has reported that the cardholder does not recognize this transaction.", d.bank),
		fmt.Sprintf(
			"Our records show the purchase was made by the legitimate cardholder, %s. The order for %s was "+
				"placed on %s using the cardholder's billing details and was delivered on %s.",
			d.customerName, d.product, d.orderDate, d.deliveryDate,
		),
	}
}

func defaultBody(d details) []string {
	return []string{
		intro(d),
		fmt.Sprintf(
			"The customer ordered %s on %s and received it on %s. We believe this chargeback was raised in "+
				"error, as the transaction was authorized and fulfilled.",
			d.product, d.orderDate, d.deliveryDate,
		),
	}
}
