package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shortlink/models"
)

// Five fresh codes before giving up; a 62^6 space makes even one retry rare.
const maxCodeRetries = 5

type LinkService struct {
	db *gorm.DB

	// genCode produces candidate short codes; swappable in tests to
	// force collisions.
	genCode func() (string, error)
}

func NewLinkService(db *gorm.DB) *LinkService {
	return &LinkService{db: db, genCode: generateShortCode}
}

// CreateLinkParams carries everything a create request contributes: the
// caller-supplied fields plus the request metadata (IP, user agent, and
// the scheme/host the short URL is built from).
type CreateLinkParams struct {
	OriginalURL string
	ExpiryDate  string
	Remarks     string
	UserID      uint
	IPAddress   string
	UserAgent   string
	Scheme      string
	Host        string
}

// Create persists a new link under a freshly generated short code. When
// the insert hits the short_code unique constraint the code is
// regenerated, up to maxCodeRetries times.
func (s *LinkService) Create(p CreateLinkParams) (*models.Link, error) {
	if p.OriginalURL == "" || p.ExpiryDate == "" || p.Remarks == "" {
		return nil, ErrValidation
	}

	expiry, err := parseExpiryDate(p.ExpiryDate)
	if err != nil {
		return nil, ErrValidation
	}

	for i := 0; i < maxCodeRetries; i++ {
		code, err := s.genCode()
		if err != nil {
			return nil, err
		}

		link := &models.Link{
			UserID:      p.UserID,
			OriginalURL: p.OriginalURL,
			ShortCode:   code,
			ShortURL:    fmt.Sprintf("%s://%s/%s", p.Scheme, p.Host, code),
			ExpiryDate:  expiry,
			Remarks:     p.Remarks,
			IPAddress:   p.IPAddress,
			UserDevice:  DeviceOS(p.UserAgent),
		}

		err = s.db.Create(link).Error
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("could not allocate a unique short code after %d attempts", maxCodeRetries)
}

// ListByUser returns every link the user owns, clicks included.
func (s *LinkService) ListByUser(userID uint) ([]models.Link, error) {
	var links []models.Link
	err := s.db.Preload("Clicks").Where("user_id = ?", userID).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Resolve looks a link up by its exact short code and records the visit.
// The visits increment and the click insert run in one transaction so a
// redirect never bumps one without the other.
func (s *LinkService) Resolve(code, rawUserAgent string) (*models.Link, error) {
	var link models.Link
	if err := s.db.Where("short_code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if time.Now().After(link.ExpiryDate) {
		return nil, ErrExpired
	}

	click := models.Click{
		LinkID: link.ID,
		Date:   time.Now().UTC(),
		Device: DeviceOS(rawUserAgent),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Link{}).Where("id = ?", link.ID).
			UpdateColumn("visits", gorm.Expr("visits + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Create(&click).Error
	})
	if err != nil {
		return nil, err
	}

	link.Visits++
	return &link, nil
}

// Update overwrites originalUrl, expiryDate and remarks. Ownership, the
// short code and the click history are never touched.
func (s *LinkService) Update(id uint, originalURL, expiryDate, remarks string) (*models.Link, error) {
	if originalURL == "" || expiryDate == "" || remarks == "" {
		return nil, ErrValidation
	}

	expiry, err := parseExpiryDate(expiryDate)
	if err != nil {
		return nil, ErrValidation
	}

	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	link.OriginalURL = originalURL
	link.ExpiryDate = expiry
	link.Remarks = remarks

	if err := s.db.Save(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Delete removes a link and its recorded clicks.
func (s *LinkService) Delete(id uint) error {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", link.ID).Delete(&models.Click{}).Error; err != nil {
			return err
		}
		return tx.Delete(&link).Error
	})
}

type DateAnalytics struct {
	ShortURL     string         `json:"shortUrl"`
	ClicksByDate map[string]int `json:"clicksByDate"`
}

type DeviceAnalytics struct {
	ShortURL       string         `json:"shortUrl"`
	ClicksByDevice map[string]int `json:"clicksByDevice"`
}

// AnalyticsByDate buckets each link's clicks by UTC calendar date.
func (s *LinkService) AnalyticsByDate(userID uint) ([]DateAnalytics, error) {
	links, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	analytics := make([]DateAnalytics, 0, len(links))
	for _, link := range links {
		byDate := make(map[string]int)
		for _, click := range link.Clicks {
			byDate[click.Date.UTC().Format("2006-01-02")]++
		}
		analytics = append(analytics, DateAnalytics{ShortURL: link.ShortURL, ClicksByDate: byDate})
	}
	return analytics, nil
}

// AnalyticsByDevice buckets each link's clicks by parsed OS name. Clicks
// whose user agent yielded no OS are skipped.
func (s *LinkService) AnalyticsByDevice(userID uint) ([]DeviceAnalytics, error) {
	links, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	analytics := make([]DeviceAnalytics, 0, len(links))
	for _, link := range links {
		byDevice := make(map[string]int)
		for _, click := range link.Clicks {
			if click.Device == "" {
				continue
			}
			byDevice[click.Device]++
		}
		analytics = append(analytics, DeviceAnalytics{ShortURL: link.ShortURL, ClicksByDevice: byDevice})
	}
	return analytics, nil
}

// parseExpiryDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseExpiryDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
