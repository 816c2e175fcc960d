package services

import (
	"testing"

	"github.com/cristianbbs/kolder-backend/repository"

	"github.com/stretchr/testify/require"
)

func TestEmergencyConfig_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfigService(repository.NewConfigRepository(db))
	admin := adminPrincipal(1, 1)

	// Missing row reads as all-null.
	out, err := svc.GetEmergency()
	require.NoError(t, err)
	require.Nil(t, out.ExtraCost)
	require.Nil(t, out.Hours)
	require.Nil(t, out.Days)

	fee := 5000.0
	hours := "09:00-18:30"
	out, err = svc.UpdateEmergency(admin, &EmergencyConfigIn{ExtraCost: &fee, Hours: &hours})
	require.NoError(t, err)
	require.NotNil(t, out.ExtraCost)
	require.Equal(t, float64(5000), *out.ExtraCost)
	require.NotNil(t, out.Hours)
	require.Equal(t, hours, *out.Hours)

	// Partial update leaves the other fields alone.
	days := "Mon-Sat"
	out, err = svc.UpdateEmergency(admin, &EmergencyConfigIn{Days: &days})
	require.NoError(t, err)
	require.NotNil(t, out.ExtraCost)
	require.Equal(t, float64(5000), *out.ExtraCost)
	require.NotNil(t, out.Days)
	require.Equal(t, days, *out.Days)
}

func TestEmergencyConfig_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfigService(repository.NewConfigRepository(db))
	admin := adminPrincipal(1, 1)

	neg := -1.0
	_, err := svc.UpdateEmergency(admin, &EmergencyConfigIn{ExtraCost: &neg})
	require.Equal(t, "BAD_BODY", appErrCode(t, err), "negative fee must be rejected")

	for _, bad := range []string{"9:00-18:00", "09:00", "25:00-26:00", "09:60-10:00", "09:00 - 18:00"} {
		h := bad
		_, err := svc.UpdateEmergency(admin, &EmergencyConfigIn{Hours: &h})
		require.Equal(t, "BAD_BODY", appErrCode(t, err), "hours %q must be rejected", bad)
	}

	_, err = svc.UpdateEmergency(admin, &EmergencyConfigIn{})
	require.Equal(t, "BAD_BODY", appErrCode(t, err), "empty update must be rejected")
}
