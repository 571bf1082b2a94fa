// Fakedata serves made up datasets with the layout of the real ones, so
// the dashboard can be run end to end without network access:
//
//	COVID_GRAPHICS_DATA_URL=http://localhost:8081/data
//	COVID_GRAPHICS_MAP_SHAPES_URL=http://localhost:8081/data/map.geojson
//	COVID_GRAPHICS_MAP_CASES_URL=http://localhost:8081/data/cases.csv
//	COVID_GRAPHICS_MAP_POPULATION_URL=http://localhost:8081/data/population.csv
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kelseyhightower/envconfig"

	"github.com/alcortesm/covid-graphics/pkg/httpdeco"
)

const (
	shutdownTimeoutSeconds   = 10
	readTimeoutSeconds       = 10
	writeTimeoutSeconds      = 10
	idleTimeoutSeconds       = 30
	readHeaderTimeoutSeconds = 2
)

type config struct {
	Port int       `default:"8081"`
	Days int       `default:"90"`
	From time.Time `default:"2020-03-01T00:00:00Z"`
}

var states = [][2]string{
	{"AGS", "Aguascalientes"},
	{"CDMX", "Ciudad de México"},
	{"JAL", "Jalisco"},
	{"NL", "Nuevo León"},
	{"OAX", "Oaxaca"},
	{"YUC", "Yucatán"},
}

var countries = [][2]string{
	{"ARG", "Argentina"},
	{"BOL", "Bolivia"},
	{"BRA", "Brazil"},
	{"CHL", "Chile"},
	{"COL", "Colombia"},
	{"MEX", "Mexico"},
	{"PER", "Peru"},
}

func main() {
	logger := log.New(os.Stdout, "",
		log.Ldate|log.Ltime|log.LUTC)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	var config config
	envPrefix := "FAKEDATA"
	err := envconfig.Process(envPrefix, &config)
	if err != nil {
		logger.Fatalf("processing environment variables: %v", err)
	}

	r := chi.NewRouter()
	r.Use(httpdeco.WithLogs(logger), httpdeco.WithRecover(logger))

	r.Get("/data/latam_latest.csv", func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, latam(config.From, config.Days))
	})
	r.Get("/data/{country}_data_latest.csv", func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, country(config.From, config.Days))
	})
	r.Get("/data/cases.csv", func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, cases(config.From, config.Days))
	})
	r.Get("/data/population.csv", func(w http.ResponseWriter, r *http.Request) {
		writeCSV(w, population())
	})
	r.Get("/data/map.geojson", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-type", "application/geo+json")
		w.Write([]byte(shapes()))
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           r,
		ReadTimeout:       readTimeoutSeconds * time.Second,
		WriteTimeout:      writeTimeoutSeconds * time.Second,
		IdleTimeout:       idleTimeoutSeconds * time.Second,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	logger.Printf("starting server at port %d...\n", config.Port)

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	<-done

	logger.Println("signal received: stopping server...")

	ctx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeoutSeconds*time.Second,
	)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("shutting down server: %+v", err)
	}
}

func writeCSV(w http.ResponseWriter, records [][]string) {
	w.Header().Set("Content-type", "text/csv")

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// wave returns a smooth made up value for the entity i on day d.
func wave(i, d int) float64 {
	return 50 * math.Sin(float64(d)/15+float64(i))
}

// country returns a country dataset with its states and the national
// aggregate. Every tenth day of the first state has no mobility data.
func country(from time.Time, days int) [][]string {
	records := [][]string{{
		"date", "days", "state_short", "state_name",
		"mobility_index", "ranking_mobility_accumulated",
		"policy_index", "ranking_policy_accumulated",
		"testpositivity_rate", "ranking_testpositivity",
	}}

	for d := 0; d < days; d++ {
		date := from.AddDate(0, 0, d).Format("2006-01-02")

		var sum float64
		for i, s := range states {
			mobility := f(wave(i, d))
			if i == 0 && d%10 == 0 {
				mobility = ""
			}
			sum += wave(i, d)

			rank := strconv.Itoa((i+d/7)%len(states) + 1)

			records = append(records, []string{
				date, strconv.Itoa(d + 1), s[0], s[1],
				mobility, rank,
				f(50 + wave(i, d)/2), rank,
				f(0.3 + wave(i, d)/200), rank,
			})
		}

		records = append(records, []string{
			date, strconv.Itoa(d + 1), "Nacional", "Nacional",
			f(sum / float64(len(states))), "",
			"50.000", "",
			"0.300", "",
		})
	}

	return records
}

func latam(from time.Time, days int) [][]string {
	records := [][]string{{
		"date", "country_short", "country",
		"mobility_index", "testpositivity_rate",
	}}

	for d := 0; d < days; d++ {
		date := from.AddDate(0, 0, d).Format("2006-01-02")

		for i, c := range countries {
			records = append(records, []string{
				date, c[0], c[1], f(wave(i, d)), f(0.3 + wave(i, d)/200),
			})
		}

		records = append(records, []string{
			date, "LATAM", "LATAM", f(wave(0, d) / 2), "0.300",
		})
	}

	return records
}

// cases returns a JHU like wide time series of cumulative counts.
func cases(from time.Time, days int) [][]string {
	header := []string{"Province/State", "Country/Region", "Lat", "Long"}
	for d := 0; d < days; d++ {
		header = append(header, from.AddDate(0, 0, d).Format("1/2/06"))
	}

	records := [][]string{header}

	for i, c := range countries {
		row := []string{"", c[1], "0", "0"}
		for d := 0; d < days; d++ {
			row = append(row, strconv.Itoa((i+1)*d*100))
		}

		records = append(records, row)
	}

	return records
}

func population() [][]string {
	records := [][]string{{"Country", "2018", "2019"}}

	for i, c := range countries {
		p := strconv.Itoa((i + 1) * 10000000)
		records = append(records, []string{c[1], p, p})
	}

	return records
}

// shapes returns a square per country, in a row.
func shapes() string {
	features := ""

	for i, c := range countries {
		x0 := -80 + 5*i
		x1 := x0 + 4

		if i > 0 {
			features += ","
		}

		features += fmt.Sprintf(`{"type":"Feature","properties":{"admin":%q},`+
			`"geometry":{"type":"Polygon","coordinates":`+
			`[[[%d,0],[%d,0],[%d,-4],[%d,-4],[%d,0]]]}}`,
			c[1], x0, x1, x1, x0, x0)
	}

	return `{"type":"FeatureCollection","features":[` + features + `]}`
}
