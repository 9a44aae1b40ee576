package seeds

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/SpeedAtlas/SA-Backend/internal/speedtest"
	"github.com/google/uuid"
)

// placeholderAddress marks seeded rows so they are easy to recognize and
// clean up.
const placeholderAddress = "0x0000000000000000000000000000000000000001"

type seedLocation struct {
	City      string
	Country   string
	Latitude  float64
	Longitude float64
}

var locations = []seedLocation{
	{"Tokyo", "Japan", 35.6895, 139.6917},
	{"New York", "USA", 40.7128, -74.0060},
	{"London", "UK", 51.5074, -0.1278},
	{"Paris", "France", 48.8566, 2.3522},
	{"Sydney", "Australia", -33.8688, 151.2093},
	{"Cairo", "Egypt", 30.0444, 31.2357},
	{"Rio de Janeiro", "Brazil", -22.9068, -43.1729},
	{"Moscow", "Russia", 55.7558, 37.6173},
	{"Beijing", "China", 39.9042, 116.4074},
	{"Lagos", "Nigeria", 6.5244, 3.3792},
	{"Buenos Aires", "Argentina", -34.6037, -58.3816},
	{"Mumbai", "India", 19.0760, 72.8777},
}

// SeedSpeedTests inserts count randomized results spread over the known city
// list, with jittered coordinates and timestamps within the last 30 days.
// Duplicate rows are skipped, not fatal, so reseeding an existing database is
// safe.
func SeedSpeedTests(store *speedtest.Store, count int) error {
	log.Println("Seeding database with consistent locations...")
	ctx := context.Background()

	inserted, skipped := 0, 0
	for i := 0; i < count; i++ {
		loc := locations[rand.Intn(len(locations))]
		ts := time.Now().Add(-time.Duration(rand.Int63n(int64(30 * 24 * time.Hour)))).UTC()
		lat := loc.Latitude + (rand.Float64()*0.2 - 0.1)
		lng := loc.Longitude + (rand.Float64()*0.2 - 0.1)

		result := speedtest.Result{
			Location:         fmt.Sprintf("%s, %s", loc.City, loc.Country),
			City:             loc.City,
			Country:          loc.Country,
			DownloadSpeed:    randomFloat(10, 1000),
			UploadSpeed:      randomFloat(5, 500),
			Ping:             randomFloat(1, 100),
			Timestamp:        ts,
			SubmissionMinute: ts.Format("2006-01-02T15:04"),
			SubmissionID:     uuid.NewString(),
			Address:          placeholderAddress,
			Latitude:         &lat,
			Longitude:        &lng,
		}

		err := store.Insert(ctx, &result)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, speedtest.ErrDuplicateSubmission):
			skipped++
		default:
			return fmt.Errorf("seeding entry %d: %w", i, err)
		}
	}

	log.Printf("Database seeded successfully: %d inserted, %d skipped", inserted, skipped)
	return nil
}

func randomFloat(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}
