package usps

import (
	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// parseErrorResponse collects every Error node in the document. Web Tools
// reports request-level failures with Error as the document root and
// per-number failures with Error nodes nested inside the response; both
// shapes land here.
func parseErrorResponse(root *xmltree.Element, identity shipping.Identity) []shipping.Message {
	var messages []shipping.Message
	for _, node := range root.FindAll("Error") {
		messages = append(messages, shipping.Message{
			CarrierName: identity.CarrierName,
			CarrierID:   identity.CarrierID,
			Code:        node.TextOf("Number"),
			Text:        node.TextOf("Description"),
		})
	}
	return messages
}
