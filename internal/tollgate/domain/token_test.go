package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/stretchr/testify/require"
)

func TestTokenRecordJSON(t *testing.T) {
	issued := time.UnixMilli(1_700_000_000_123).UTC()
	rec := domain.TokenRecord{
		ClientID:  "workshop_client",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(time.Hour),
	}

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"clientId":"workshop_client","issuedAt":1700000000123,"expiresAt":1700003600123}`,
		string(b))

	var back domain.TokenRecord
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, rec, back)
}

func TestTokenRecordRejectsGarbage(t *testing.T) {
	var rec domain.TokenRecord
	require.Error(t, json.Unmarshal([]byte(`{"issuedAt":"yesterday"}`), &rec))
}
