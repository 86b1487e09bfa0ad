package ups

import (
	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/soap"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// parseErrorResponse collects SOAP faults and the structured error codes
// the freight services nest inside them. Both can appear in the same
// document; everything found comes back as messages.
func parseErrorResponse(root *xmltree.Element, identity shipping.Identity) []shipping.Message {
	messages := soap.ExtractFault(root, identity)
	for _, node := range root.FindAll("PrimaryErrorCode") {
		messages = append(messages, shipping.Message{
			CarrierName: identity.CarrierName,
			CarrierID:   identity.CarrierID,
			Code:        node.TextOf("Code"),
			Text:        node.TextOf("Description"),
		})
	}
	return messages
}
