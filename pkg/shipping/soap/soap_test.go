package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

func TestCreateEnvelope(t *testing.T) {
	body := shipping.NewSerializable("<tns:Ping>hello</tns:Ping>", nil)

	envelope := CreateEnvelope(body)

	assert.Equal(t,
		`<tns:Envelope xmlns:tns="http://schemas.xmlsoap.org/soap/envelope/">`+
			`<tns:Body><tns:Ping>hello</tns:Ping></tns:Body>`+
			`</tns:Envelope>`,
		envelope.Serialize())
}

func TestCreateEnvelopeWithHeader(t *testing.T) {
	body := shipping.NewSerializable("<tns:Request/>", nil)
	header := shipping.NewSerializable("<tns:Security>token</tns:Security>", nil)

	envelope := CreateEnvelope(body,
		WithHeader(header),
		WithEnvelopePrefix("soap"),
		WithNamespace("wsf", "http://example.com/wsf"),
		WithNamespace("auth", "http://example.com/auth"),
	)

	serialized := envelope.Serialize()
	assert.Contains(t, serialized, `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"`)
	assert.Contains(t, serialized, `xmlns:auth="http://example.com/auth" xmlns:wsf="http://example.com/wsf"`)
	assert.Contains(t, serialized, `<soap:Header><tns:Security>token</tns:Security></soap:Header>`)
	assert.Contains(t, serialized, `<soap:Body><tns:Request/></soap:Body>`)
}

func TestCleanNamespaces(t *testing.T) {
	envelope := `<tns:Envelope>` +
		`<tns:Header><tns:Security><tns:Token>t</tns:Token></tns:Security></tns:Header>` +
		`<tns:Body><tns:RateRequest><tns:Shipment/></tns:RateRequest></tns:Body>` +
		`</tns:Envelope>`

	cleaned := CleanNamespaces(envelope, "tns:", "RateRequest", "Security", "auth:", "rate:")

	assert.Contains(t, cleaned, `<auth:Security>`)
	assert.Contains(t, cleaned, `</auth:Security>`)
	assert.Contains(t, cleaned, `<rate:RateRequest>`)
	assert.Contains(t, cleaned, `</rate:RateRequest>`)
	// Only the direct header and body children are rewritten.
	assert.Contains(t, cleaned, `<tns:Envelope>`)
	assert.Contains(t, cleaned, `<tns:Token>t</tns:Token>`)
	assert.Contains(t, cleaned, `<tns:Shipment/>`)
}

func TestExtractFault(t *testing.T) {
	response := xmltree.MustParse(`
		<Envelope>
			<Body>
				<Fault>
					<faultcode>Client</faultcode>
					<faultstring>Invalid shipment weight</faultstring>
				</Fault>
			</Body>
		</Envelope>`)

	identity := shipping.Identity{CarrierName: "purolator", CarrierID: "purolator-ca"}
	messages := ExtractFault(response, identity)

	require.Len(t, messages, 1)
	assert.Equal(t, "Client", messages[0].Code)
	assert.Equal(t, "Invalid shipment weight", messages[0].Text)
	assert.Equal(t, "purolator", messages[0].CarrierName)
	assert.Equal(t, "purolator-ca", messages[0].CarrierID)
}

func TestExtractFaultNested(t *testing.T) {
	response := xmltree.MustParse(`
		<Envelope><Body><Response><Detail>
			<Fault><faultcode>Server</faultcode><faultstring>down</faultstring></Fault>
		</Detail></Response></Body></Envelope>`)

	messages := ExtractFault(response, shipping.Identity{CarrierName: "purolator"})
	require.Len(t, messages, 1)
	assert.Equal(t, "Server", messages[0].Code)
}

func TestExtractFaultNone(t *testing.T) {
	response := xmltree.MustParse(`<Envelope><Body><Ok/></Body></Envelope>`)
	assert.Empty(t, ExtractFault(response, shipping.Identity{}))
}
