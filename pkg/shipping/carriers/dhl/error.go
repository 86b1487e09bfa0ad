package dhl

import (
	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// parseErrorResponse collects every condition node the gateway reports,
// wherever it sits in the document. Parsing always runs: a response can
// carry usable results and error conditions side by side.
func parseErrorResponse(root *xmltree.Element, identity shipping.Identity) []shipping.Message {
	var messages []shipping.Message
	for _, condition := range root.FindAll("Condition") {
		messages = append(messages, shipping.Message{
			CarrierName: identity.CarrierName,
			CarrierID:   identity.CarrierID,
			Code:        condition.TextOf("ConditionCode"),
			Text:        condition.TextOf("ConditionData"),
		})
	}
	return messages
}
