package catalog

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

var (
	serviceID  = uuid.MustParse("9a7e4c10-0000-4000-8000-000000000001")
	locationID = uuid.MustParse("9a7e4c10-0000-4000-8000-000000000002")
	operatorID = uuid.MustParse("9a7e4c10-0000-4000-8000-000000000003")
)

func TestSelectLocations(t *testing.T) {
	tests := []struct {
		name       string
		operatorID *uuid.UUID
		wantSQL    string
		wantArgs   []interface{}
	}{
		{
			name: "все локации услуги",
			wantSQL: "SELECT DISTINCT l.id, l.name, l.address, l.phone FROM locations l " +
				"JOIN availability_rules r ON r.location_id = l.id " +
				"WHERE r.enabled = $1 AND r.service_id = $2 " +
				"ORDER BY l.name ASC, l.id ASC",
			wantArgs: []interface{}{true, serviceID.String()},
		},
		{
			name:       "локации оператора",
			operatorID: ptr.Ptr(operatorID),
			wantSQL: "SELECT DISTINCT l.id, l.name, l.address, l.phone FROM locations l " +
				"JOIN availability_rules r ON r.location_id = l.id " +
				"WHERE r.enabled = $1 AND r.service_id = $2 AND r.operator_id = $3 " +
				"ORDER BY l.name ASC, l.id ASC",
			wantArgs: []interface{}{true, serviceID.String(), operatorID.String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := selectLocations(serviceID, tt.operatorID).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSelectOperators(t *testing.T) {
	tests := []struct {
		name       string
		locationID *uuid.UUID
		wantSQL    string
		wantArgs   []interface{}
	}{
		{
			name: "все операторы услуги",
			wantSQL: "SELECT DISTINCT o.id, o.title, o.first_name, o.last_name FROM operators o " +
				"JOIN availability_rules r ON r.operator_id = o.id " +
				"WHERE r.enabled = $1 AND r.service_id = $2 " +
				"ORDER BY o.last_name ASC, o.first_name ASC, o.id ASC",
			wantArgs: []interface{}{true, serviceID.String()},
		},
		{
			name:       "операторы локации",
			locationID: ptr.Ptr(locationID),
			wantSQL: "SELECT DISTINCT o.id, o.title, o.first_name, o.last_name FROM operators o " +
				"JOIN availability_rules r ON r.operator_id = o.id " +
				"WHERE r.enabled = $1 AND r.service_id = $2 AND r.location_id = $3 " +
				"ORDER BY o.last_name ASC, o.first_name ASC, o.id ASC",
			wantArgs: []interface{}{true, serviceID.String(), locationID.String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := selectOperators(serviceID, tt.locationID).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRows_ToDomain(t *testing.T) {
	loc := locationRow{ID: locationID, Name: "Центральный офис", Address: "ул. Ленина, 1"}
	assert.Empty(t, loc.toDomain().Phone)

	loc.Phone = sql.NullString{String: "+7 495 000-00-00", Valid: true}
	assert.Equal(t, "+7 495 000-00-00", loc.toDomain().Phone)

	op := operatorRow{ID: operatorID, FirstName: "Anna", LastName: "Smirnova"}
	got := op.toDomain()
	assert.Equal(t, operatorID, got.ID)
	assert.Empty(t, got.Title)
	assert.Equal(t, "Anna Smirnova", got.DisplayName())
}
