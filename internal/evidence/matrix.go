package evidence

import (
	"slices"

	"github.com/sprite-ai/rebuttal/internal/model"
)

// DefaultProductType is the matrix column used for duplicate disputes when the
// merchant has not picked a product type.
const DefaultProductType model.ProductType = "default"

type matrixKey struct {
	ProductType model.ProductType
	SubStatus   string
}

// MatrixEntry is one cell of the evidence matrix.
type MatrixEntry struct {
	Fields []Field
	// Complete entries already list everything the case needs; the base
	// communication field is not merged into them.
	Complete bool
}

// Reasons whose matrix cells are keyed by sub-status as well as product type.
var subStatusAxis = map[model.Reason]bool{
	model.ReasonDuplicate: true,
}

var refundReceiptField = otherDocumentsField.relabel("Refund receipt", "A receipt or statement showing the duplicate charge was refunded.")

var evidenceMatrix = map[model.Reason]map[matrixKey]MatrixEntry{
	model.ReasonProductNotReceived: {
		{ProductType: model.ProductPhysical}: {Fields: []Field{
			receiptField,
			communicationField,
			shippingDocsField.at(30),
			signatureField.relabel("Proof of delivery", "A signed delivery confirmation or carrier record showing the order arrived.").at(40),
			otherDocumentsField,
		}},
		{ProductType: model.ProductDigital}: {Fields: []Field{
			receiptField,
			communicationField,
			accessLogField.relabel("Proof of access or download", "").at(30),
			otherDocumentsField,
		}},
		{ProductType: model.ProductOfflineService}: {Fields: []Field{
			receiptField,
			communicationField,
			serviceDocsField.relabel("Proof of service", "Records showing the service took place on the agreed date.").at(30),
			otherDocumentsField,
		}},
		{ProductType: model.ProductBookingReservation}: {Fields: []Field{
			receiptField,
			serviceDocsField.relabel("Booking confirmation", "The confirmation sent to the customer for the booking or reservation.").at(30),
			cancellationPolicyField.at(40),
			otherDocumentsField,
		}},
		{ProductType: model.ProductMultiple}: {Fields: []Field{
			receiptField,
			communicationField,
			shippingDocsField.at(30),
			accessLogField.at(40),
			serviceDocsField.at(50),
			otherDocumentsField,
		}},
	},
	model.ReasonProductUnacceptable: {
		{ProductType: model.ProductPhysical}: {Fields: []Field{
			receiptField,
			communicationField,
			serviceDocsField.relabel("Product description", "The product listing or description the customer saw when buying.").at(30),
			refundPolicyField.at(40),
			otherDocumentsField,
		}},
		{ProductType: model.ProductDigital}: {Fields: []Field{
			receiptField,
			communicationField,
			serviceDocsField.relabel("Product description", "The product listing or description the customer saw when buying.").at(30),
			accessLogField.at(40),
			refundPolicyField.at(50),
			otherDocumentsField,
		}},
		{ProductType: model.ProductOfflineService}: {Fields: []Field{
			receiptField,
			communicationField,
			serviceDocsField.relabel("Service agreement", "The agreement or quote describing the service that was provided.").at(30),
			refundPolicyField.at(40),
			otherDocumentsField,
		}},
		{ProductType: model.ProductBookingReservation}: {Fields: []Field{
			receiptField,
			communicationField,
			serviceDocsField.relabel("Booking details", "The description of the booking as confirmed to the customer.").at(30),
			cancellationPolicyField.at(40),
			otherDocumentsField,
		}},
	},
	model.ReasonSubscriptionCanceled: {
		{ProductType: model.ProductPhysical}: {Fields: []Field{
			receiptField,
			cancellationPolicyField.at(30),
			shippingDocsField.at(40),
			otherDocumentsField,
		}},
		{ProductType: model.ProductDigital}: {Fields: []Field{
			receiptField,
			communicationField,
			cancellationPolicyField.at(30),
			accessLogField.relabel("Proof of active subscription", "Logs showing the customer kept using the subscription after the cancellation date.").at(40),
			otherDocumentsField,
		}},
		{ProductType: model.ProductOfflineService}: {Fields: []Field{
			receiptField,
			communicationField,
			cancellationPolicyField.at(30),
			serviceDocsField.relabel("Proof of service", "Records showing the service continued to be provided.").at(40),
			otherDocumentsField,
		}},
	},
	model.ReasonDuplicate: {
		{ProductType: DefaultProductType, SubStatus: string(model.IsDuplicate)}: {Complete: true, Fields: []Field{
			receiptField,
			refundReceiptField.at(20),
			refundPolicyField.at(30),
		}},
		{ProductType: DefaultProductType, SubStatus: string(model.IsNotDuplicate)}: {Complete: true, Fields: []Field{
			receiptField,
			duplicateDocsField.at(20),
			communicationField.at(30),
			otherDocumentsField,
		}},
		{ProductType: model.ProductPhysical, SubStatus: string(model.IsDuplicate)}: {Complete: true, Fields: []Field{
			receiptField,
			refundReceiptField.at(20),
			refundPolicyField.at(30),
		}},
		{ProductType: model.ProductPhysical, SubStatus: string(model.IsNotDuplicate)}: {Complete: true, Fields: []Field{
			receiptField,
			duplicateDocsField.at(20),
			shippingDocsField.relabel("Proof of separate shipments", "Tracking records for each shipment the charges paid for.").at(30),
			communicationField.at(40),
			otherDocumentsField,
		}},
		{ProductType: model.ProductBookingReservation, SubStatus: string(model.IsDuplicate)}: {Complete: true, Fields: []Field{
			receiptField,
			refundReceiptField.at(20),
			refundPolicyField.at(30),
		}},
		{ProductType: model.ProductBookingReservation, SubStatus: string(model.IsNotDuplicate)}: {Complete: true, Fields: []Field{
			receiptField,
			duplicateDocsField.relabel("Proof of separate bookings", "Confirmations showing each charge was for a different booking.").at(20),
			communicationField.at(30),
			otherDocumentsField,
		}},
	},
	model.ReasonFraudulent:   fraudMatrix,
	model.ReasonUnrecognized: fraudMatrix,
}

var fraudMatrix = map[matrixKey]MatrixEntry{
	{ProductType: model.ProductPhysical}: {Fields: []Field{
		receiptField,
		shippingDocsField.relabel("Proof of delivery to billing address", "Tracking showing delivery to the cardholder's billing address.").at(30),
		signatureField.at(40),
		otherDocumentsField,
	}},
	{ProductType: model.ProductDigital}: {Fields: []Field{
		receiptField,
		communicationField,
		accessLogField.relabel("Proof of purchase activity", "Logs tying the purchase to the cardholder, such as IP address, device or prior orders.").at(30),
		otherDocumentsField,
	}},
	{ProductType: model.ProductOfflineService}: {Fields: []Field{
		receiptField,
		communicationField,
		serviceDocsField.relabel("Proof of service", "Records showing the cardholder received the service.").at(30),
		signatureField.at(40),
		otherDocumentsField,
	}},
	{ProductType: model.ProductBookingReservation}: {Fields: []Field{
		receiptField,
		serviceDocsField.relabel("Booking confirmation", "The confirmation sent to the cardholder for the booking or reservation.").at(30),
		otherDocumentsField,
	}},
}

// LookupMatrix returns the matrix cell for reason and product type. The
// sub-status only participates for reasons that have a second axis. The
// second result is false when no cell exists.
func LookupMatrix(reason model.Reason, productType model.ProductType, subStatus string) (MatrixEntry, bool) {
	cells, ok := evidenceMatrix[reason.Normalize()]
	if !ok {
		return MatrixEntry{}, false
	}
	key := matrixKey{ProductType: productType}
	if subStatusAxis[reason.Normalize()] {
		key.SubStatus = subStatus
	}
	entry, ok := cells[key]
	if !ok {
		return MatrixEntry{}, false
	}
	entry.Fields = slices.Clone(entry.Fields)
	return entry, true
}
