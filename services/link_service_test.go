package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/models"
)

const (
	uaWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaAndroid = "Mozilla/5.0 (Linux; Android 10; SM-G975F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.91 Mobile Safari/537.36"
)

func validCreateParams() CreateLinkParams {
	return CreateLinkParams{
		OriginalURL: "https://example.com",
		ExpiryDate:  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		Remarks:     "test",
		UserID:      1,
		IPAddress:   "203.0.113.7",
		UserAgent:   uaWindows,
		Scheme:      "http",
		Host:        "sho.rt",
	}
}

func TestGenerateShortCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateShortCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.Contains(t, charset, string(r))
		}
		seen[code] = true
	}
	// 100 draws from a 62^6 space should essentially never collide.
	assert.Greater(t, len(seen), 95)
}

func TestCreateLink(t *testing.T) {
	svc := NewLinkService(testDB(t))

	link, err := svc.Create(validCreateParams())
	require.NoError(t, err)

	assert.Len(t, link.ShortCode, 6)
	assert.Equal(t, "http://sho.rt/"+link.ShortCode, link.ShortURL)
	assert.Equal(t, "https://example.com", link.OriginalURL)
	assert.Equal(t, "test", link.Remarks)
	assert.Equal(t, uint(1), link.UserID)
	assert.Equal(t, "203.0.113.7", link.IPAddress)
	assert.Equal(t, "Windows", link.UserDevice)
	assert.Equal(t, 0, link.Visits)
}

func TestCreateLinkRetriesOnCollision(t *testing.T) {
	svc := NewLinkService(testDB(t))

	taken, err := svc.Create(validCreateParams())
	require.NoError(t, err)

	// First candidate collides with the existing code, second is fresh.
	codes := []string{taken.ShortCode, "fresh1"}
	svc.genCode = func() (string, error) {
		code := codes[0]
		if len(codes) > 1 {
			codes = codes[1:]
		}
		return code, nil
	}

	link, err := svc.Create(validCreateParams())
	require.NoError(t, err)
	assert.Equal(t, "fresh1", link.ShortCode)
}

func TestCreateLinkExhaustsCodeRetries(t *testing.T) {
	svc := NewLinkService(testDB(t))

	taken, err := svc.Create(validCreateParams())
	require.NoError(t, err)

	attempts := 0
	svc.genCode = func() (string, error) {
		attempts++
		return taken.ShortCode, nil
	}

	_, err = svc.Create(validCreateParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique short code")
	assert.Equal(t, maxCodeRetries, attempts)
}

func TestCreateLinkValidation(t *testing.T) {
	svc := NewLinkService(testDB(t))

	tests := []struct {
		name   string
		mutate func(*CreateLinkParams)
	}{
		{"missing original URL", func(p *CreateLinkParams) { p.OriginalURL = "" }},
		{"missing expiry date", func(p *CreateLinkParams) { p.ExpiryDate = "" }},
		{"missing remarks", func(p *CreateLinkParams) { p.Remarks = "" }},
		{"unparseable expiry date", func(p *CreateLinkParams) { p.ExpiryDate = "tomorrow" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCreateParams()
			tt.mutate(&p)
			_, err := svc.Create(p)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateLinkDateOnlyExpiry(t *testing.T) {
	svc := NewLinkService(testDB(t))

	p := validCreateParams()
	p.ExpiryDate = "2099-12-31"
	link, err := svc.Create(p)
	require.NoError(t, err)
	assert.Equal(t, 2099, link.ExpiryDate.Year())
}

func TestResolveRecordsVisit(t *testing.T) {
	db := testDB(t)
	svc := NewLinkService(db)

	created, err := svc.Create(validCreateParams())
	require.NoError(t, err)

	resolved, err := svc.Resolve(created.ShortCode, uaWindows)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", resolved.OriginalURL)
	assert.Equal(t, 1, resolved.Visits)

	resolved, err = svc.Resolve(created.ShortCode, uaAndroid)
	require.NoError(t, err)
	assert.Equal(t, 2, resolved.Visits)

	var stored models.Link
	require.NoError(t, db.Preload("Clicks").First(&stored, created.ID).Error)
	assert.Equal(t, 2, stored.Visits)
	require.Len(t, stored.Clicks, 2)
	devices := []string{stored.Clicks[0].Device, stored.Clicks[1].Device}
	assert.ElementsMatch(t, []string{"Windows", "Android"}, devices)
	assert.WithinDuration(t, time.Now().UTC(), stored.Clicks[1].Date, time.Minute)
}

func TestResolveUnknownCode(t *testing.T) {
	svc := NewLinkService(testDB(t))

	_, err := svc.Resolve("nosuch", uaWindows)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveExpired(t *testing.T) {
	db := testDB(t)
	svc := NewLinkService(db)

	p := validCreateParams()
	p.ExpiryDate = time.Now().Add(-time.Hour).Format(time.RFC3339)
	created, err := svc.Create(p)
	require.NoError(t, err)

	_, err = svc.Resolve(created.ShortCode, uaWindows)
	assert.ErrorIs(t, err, ErrExpired)

	// An expired hit must leave no trace.
	var stored models.Link
	require.NoError(t, db.Preload("Clicks").First(&stored, created.ID).Error)
	assert.Equal(t, 0, stored.Visits)
	assert.Empty(t, stored.Clicks)
}

func TestUpdateLink(t *testing.T) {
	db := testDB(t)
	svc := NewLinkService(db)

	created, err := svc.Create(validCreateParams())
	require.NoError(t, err)
	_, err = svc.Resolve(created.ShortCode, uaWindows)
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, "https://example.org", "2099-01-01", "changed")
	require.NoError(t, err)

	assert.Equal(t, "https://example.org", updated.OriginalURL)
	assert.Equal(t, "changed", updated.Remarks)
	assert.Equal(t, 2099, updated.ExpiryDate.Year())
	// Ownership, code and counters survive an update.
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, created.ShortCode, updated.ShortCode)
	assert.Equal(t, 1, updated.Visits)
}

func TestUpdateLinkErrors(t *testing.T) {
	svc := NewLinkService(testDB(t))

	_, err := svc.Update(42, "https://example.org", "2099-01-01", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := svc.Create(validCreateParams())
	require.NoError(t, err)
	_, err = svc.Update(created.ID, "", "2099-01-01", "x")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteLink(t *testing.T) {
	db := testDB(t)
	svc := NewLinkService(db)

	created, err := svc.Create(validCreateParams())
	require.NoError(t, err)
	_, err = svc.Resolve(created.ShortCode, uaWindows)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.Resolve(created.ShortCode, uaWindows)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(created.ID, "https://example.org", "2099-01-01", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(created.ID), ErrNotFound)

	// Clicks go with the link.
	var count int64
	require.NoError(t, db.Model(&models.Click{}).Where("link_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListByUser(t *testing.T) {
	svc := NewLinkService(testDB(t))

	first, err := svc.Create(validCreateParams())
	require.NoError(t, err)
	p := validCreateParams()
	p.UserID = 2
	_, err = svc.Create(p)
	require.NoError(t, err)
	_, err = svc.Resolve(first.ShortCode, uaWindows)
	require.NoError(t, err)

	links, err := svc.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, first.ShortCode, links[0].ShortCode)
	assert.Len(t, links[0].Clicks, 1)

	links, err = svc.ListByUser(99)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestAnalytics(t *testing.T) {
	db := testDB(t)
	svc := NewLinkService(db)

	created, err := svc.Create(validCreateParams())
	require.NoError(t, err)

	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 23, 59, 0, 0, time.UTC)
	clicks := []models.Click{
		{LinkID: created.ID, Date: day1, Device: "Windows"},
		{LinkID: created.ID, Date: day1, Device: "Android"},
		{LinkID: created.ID, Date: day2, Device: "Windows"},
		{LinkID: created.ID, Date: day2, Device: ""}, // unrecognized agent
	}
	require.NoError(t, db.Create(&clicks).Error)
	require.NoError(t, db.Model(&models.Link{}).Where("id = ?", created.ID).Update("visits", len(clicks)).Error)

	byDate, err := svc.AnalyticsByDate(created.UserID)
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, created.ShortURL, byDate[0].ShortURL)
	assert.Equal(t, map[string]int{"2026-08-01": 2, "2026-08-02": 2}, byDate[0].ClicksByDate)

	// Every click lands in exactly one date bucket.
	total := 0
	for _, n := range byDate[0].ClicksByDate {
		total += n
	}
	assert.Equal(t, len(clicks), total)

	byDevice, err := svc.AnalyticsByDevice(created.UserID)
	require.NoError(t, err)
	require.Len(t, byDevice, 1)
	assert.Equal(t, map[string]int{"Windows": 2, "Android": 1}, byDevice[0].ClicksByDevice)
}

func TestDeviceOS(t *testing.T) {
	assert.Equal(t, "Windows", DeviceOS(uaWindows))
	assert.Equal(t, "Android", DeviceOS(uaAndroid))
	assert.Equal(t, "", DeviceOS(""))
	assert.Equal(t, "", DeviceOS(strings.Repeat("x", 20)))
}
