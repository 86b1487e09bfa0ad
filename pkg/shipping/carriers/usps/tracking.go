package usps

import (
	"encoding/xml"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// ============================================================================
// TrackV2 wire structures
// ============================================================================

type trackFieldRequest struct {
	XMLName  xml.Name  `xml:"TrackFieldRequest"`
	UserID   string    `xml:"USERID,attr"`
	Revision string    `xml:"Revision"`
	ClientIP string    `xml:"ClientIp"`
	SourceID string    `xml:"SourceId"`
	TrackID  []trackID `xml:"TrackID"`
}

type trackID struct {
	ID string `xml:"ID,attr"`
}

type trackDetail struct {
	Event        string `xml:"Event"`
	EventDate    string `xml:"EventDate"`
	EventTime    string `xml:"EventTime"`
	EventCity    string `xml:"EventCity"`
	EventState   string `xml:"EventState"`
	EventZIPCode string `xml:"EventZIPCode"`
	EventCode    string `xml:"EventCode"`
}

// ============================================================================
// Tracking
// ============================================================================

// CreateTrackingRequest builds a TrackV2 field request covering every
// requested tracking number.
func (m *Mapper) CreateTrackingRequest(payload *shipping.TrackingRequest) (shipping.Serializable, error) {
	if len(payload.TrackingNumbers) == 0 {
		return nil, shipping.NewFieldError(map[string]shipping.FieldErrorCode{
			"tracking_numbers": shipping.FieldErrorRequired,
		})
	}

	request := trackFieldRequest{
		UserID:   m.settings.UserID,
		Revision: "1",
		ClientIP: "127.0.0.1",
		SourceID: "shipcore",
	}
	for _, number := range payload.TrackingNumbers {
		request.TrackID = append(request.TrackID, trackID{ID: number})
	}
	return shipping.NewSerializable(request, serializeTrackingRequest), nil
}

func serializeTrackingRequest(request trackFieldRequest) string {
	out, err := xml.Marshal(request)
	if err != nil {
		return ""
	}
	return string(out)
}

// ParseTrackingResponse extracts one tracking result per TrackInfo node.
// Error nodes can sit beside usable track infos when only some of the
// requested numbers are known; both come back together.
func (m *Mapper) ParseTrackingResponse(response *shipping.Deserializable) ([]shipping.TrackingDetails, []shipping.Message) {
	var details []shipping.TrackingDetails
	for _, node := range response.Root.FindAll("TrackInfo") {
		details = append(details, m.extractTracking(node))
	}
	return details, parseErrorResponse(response.Root, m.Identity())
}

func (m *Mapper) extractTracking(node *xmltree.Element) shipping.TrackingDetails {
	id := m.Identity()
	result := shipping.TrackingDetails{
		CarrierName:    id.CarrierName,
		CarrierID:      id.CarrierID,
		TrackingNumber: node.Attr("ID"),
	}
	for _, eventNode := range node.FindAll("TrackDetail") {
		result.Events = append(result.Events, extractEvent(eventNode))
	}
	if summary := node.Find("TrackSummary"); summary != nil {
		result.Events = append(result.Events, extractEvent(summary))
	}
	return result
}

func extractEvent(node *xmltree.Element) shipping.TrackingEvent {
	var detail trackDetail
	if err := xmltree.DecodeInto(node, &detail); err != nil {
		return shipping.TrackingEvent{}
	}
	location := detail.EventCity
	if detail.EventState != "" {
		if location != "" {
			location += ", "
		}
		location += detail.EventState
	}
	return shipping.TrackingEvent{
		Date:        detail.EventDate,
		Time:        detail.EventTime,
		Code:        detail.EventCode,
		Description: detail.Event,
		Location:    location,
	}
}
