package billing

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	stmt, err := Load("testdata/statement.yaml")
	require.NoError(t, err)

	assert.Equal(t, "IPD-2024-0042", stmt.ID)
	assert.Equal(t, "Asha Kulkarni", stmt.Patient.Name)
	assert.Equal(t, "B-12", stmt.Patient.BedNumber)
	require.NotNil(t, stmt.Patient.AdmittedAt)
	assert.Equal(t, 2024, stmt.Patient.AdmittedAt.Year())
	assert.Len(t, stmt.Items, 5)
	assert.Len(t, stmt.Payments, 3)
}

func TestTotals(t *testing.T) {
	stmt, err := Load("testdata/statement.yaml")
	require.NoError(t, err)

	totals := stmt.Totals()
	assert.InDelta(t, 9500, totals.ByKind[ChargeHospital], 1e-9)
	assert.InDelta(t, 700, totals.ByKind[ChargeService], 1e-9)
	assert.InDelta(t, 3200, totals.ByKind[ChargeConsultant], 1e-9)
	assert.InDelta(t, 625, totals.ByKind[ChargeMedicine], 1e-9)
	assert.InDelta(t, 14025, totals.GrossTotal, 1e-9)
	assert.InDelta(t, 13725, totals.NetTotal, 1e-9)
	assert.InDelta(t, 13000, totals.Deposits, 1e-9)
	assert.InDelta(t, 500, totals.Refunds, 1e-9)
	assert.InDelta(t, 12500, totals.Paid, 1e-9)
	assert.InDelta(t, 1225, totals.Due, 1e-9)
}

func TestTotals_Empty(t *testing.T) {
	stmt := &Statement{Patient: Patient{Name: "x"}}
	totals := stmt.Totals()
	assert.Zero(t, totals.GrossTotal)
	assert.Zero(t, totals.Due)
	assert.Empty(t, totals.ByKind)
}

func TestItemsByKind_KeepsOrder(t *testing.T) {
	stmt := &Statement{Items: []LineItem{
		{Kind: ChargeMedicine, Description: "a"},
		{Kind: ChargeService, Description: "b"},
		{Kind: ChargeMedicine, Description: "c"},
	}}
	groups := stmt.ItemsByKind()
	require.Len(t, groups[ChargeMedicine], 2)
	assert.Equal(t, "a", groups[ChargeMedicine][0].Description)
	assert.Equal(t, "c", groups[ChargeMedicine][1].Description)
}

func TestDecode_JSONAssignsID(t *testing.T) {
	in := `{"patient":{"name":"R. Shah"},"items":[{"kind":"service","description":"X-ray","quantity":1,"unit_price":900}]}`
	stmt, err := Decode(strings.NewReader(in), "json")
	require.NoError(t, err)

	_, err = uuid.Parse(stmt.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 900, stmt.Totals().Due, 1e-9)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		input   string
		field   string
		wantErr string
	}{
		{name: "unknown format", format: "xml", input: "<x/>", wantErr: "unsupported statement format"},
		{name: "bad yaml", format: "yaml", input: "patient: [", wantErr: "failed to decode statement YAML"},
		{name: "unknown field", format: "json", input: `{"patient":{"name":"a"},"extra":1}`, wantErr: "failed to decode statement JSON"},
		{name: "missing patient", format: "yaml", input: "items: []\n", field: "patient.name"},
		{name: "bad kind", format: "yaml", input: "patient: {name: a}\nitems: [{kind: food, description: x, quantity: 1, unit_price: 1}]\n", field: "items[0].kind"},
		{name: "empty description", format: "yaml", input: "patient: {name: a}\nitems: [{kind: service, description: ' ', quantity: 1, unit_price: 1}]\n", field: "items[0].description"},
		{name: "negative quantity", format: "yaml", input: "patient: {name: a}\nitems: [{kind: service, description: x, quantity: -1, unit_price: 1}]\n", field: "items[0].quantity"},
		{name: "negative price", format: "yaml", input: "patient: {name: a}\nitems: [{kind: service, description: x, quantity: 1, unit_price: -1}]\n", field: "items[0].unit_price"},
		{name: "bad payment type", format: "yaml", input: "patient: {name: a}\npayments: [{type: cheque, amount: 1}]\n", field: "payments[0].type"},
		{name: "negative payment", format: "yaml", input: "patient: {name: a}\npayments: [{type: deposit, amount: -1}]\n", field: "payments[0].amount"},
		{name: "discount over gross", format: "yaml", input: "patient: {name: a}\ndiscount: {amount: 10}\n", field: "discount.amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			if tt.field != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.field, verr.Field)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	assert.ErrorContains(t, err, "failed to open statement")
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "json", FormatOf("a/b.JSON"))
	assert.Equal(t, "yaml", FormatOf("a/b.yml"))
	assert.Equal(t, "yaml", FormatOf("noext"))
}

func TestChargeKindTitle(t *testing.T) {
	assert.Equal(t, "Medicines", ChargeMedicine.Title())
	assert.Equal(t, "other", ChargeKind("other").Title())
}
