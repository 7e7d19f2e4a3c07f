package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"unicode"
	"unicode/utf8"

	"github.com/dnestruev/VALERA-2.0/infrastructure/metrics"
	"github.com/dnestruev/VALERA-2.0/infrastructure/tracing"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

const (
	notFoundMessage = "Город не найден 🤷"
	errorMessage    = "Не удалось получить погоду. Попробуйте позже."
)

type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusError
)

// Result is the outcome of one lookup. A failed lookup is still a Result,
// never an error: the bot must answer with text no matter what the provider did.
type Result struct {
	Status Status
	Text   string
}

func (r Result) Display() string {
	switch r.Status {
	case StatusOK:
		return r.Text
	case StatusNotFound:
		return notFoundMessage
	default:
		return errorMessage
	}
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{},
	}
}

type providerResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Fetch queries the provider for the given city, metric units, russian description.
func (c *Client) Fetch(ctx context.Context, city string) Result {
	ctx, span := tracing.StartSpan(ctx, "WeatherFetch")
	defer span.End()

	result := c.fetch(ctx, city)

	switch result.Status {
	case StatusOK:
		metrics.WeatherLookups.WithLabelValues("ok").Inc()
	case StatusNotFound:
		metrics.WeatherLookups.WithLabelValues("not_found").Inc()
	default:
		metrics.WeatherLookups.WithLabelValues("error").Inc()
	}

	return result
}

func (c *Client) fetch(ctx context.Context, city string) Result {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("lang", "ru")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("failed to build weather request for city '%s': %v", city, err)
		return Result{Status: StatusError}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("weather request for city '%s' failed: %v", city, err)
		return Result{Status: StatusError}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{Status: StatusNotFound}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("weather provider returned status %d for city '%s'", resp.StatusCode, city)
		return Result{Status: StatusError}
	}

	var payload providerResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("failed to decode weather response for city '%s': %v", city, err)
		return Result{Status: StatusError}
	}

	if len(payload.Weather) == 0 {
		log.Printf("weather response for city '%s' has no description", city)
		return Result{Status: StatusError}
	}

	text := fmt.Sprintf("Погода в %s: %.1f°C\n%s",
		city, payload.Main.Temp, capitalize(payload.Weather[0].Description))

	return Result{Status: StatusOK, Text: text}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
