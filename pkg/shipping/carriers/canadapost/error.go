package canadapost

import (
	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// parseErrorResponse collects every message node the gateway reports.
// Canada Post wraps errors in a messages document but also nests message
// nodes inside otherwise-valid responses.
func parseErrorResponse(root *xmltree.Element, identity shipping.Identity) []shipping.Message {
	var messages []shipping.Message
	for _, node := range root.FindAll("message") {
		messages = append(messages, shipping.Message{
			CarrierName: identity.CarrierName,
			CarrierID:   identity.CarrierID,
			Code:        node.TextOf("code"),
			Text:        node.TextOf("description"),
		})
	}
	return messages
}
