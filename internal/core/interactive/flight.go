package interactive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL hosts the quiz endpoints for the flight-number lookup.
const DefaultBaseURL = "https://register.hackrx.in"

const lookupTimeout = 10 * time.Second

// defaultFlightEndpoint serves every city whose landmarks carry no dedicated
// endpoint.
const defaultFlightEndpoint = "getFifthCityFlightNumber"

// cityLandmarks is the published quiz table mapping the favourite city to its
// (deliberately scrambled) landmarks.
var cityLandmarks = map[string][]string{
	// Indian cities
	"Delhi":      {"Gateway of India"},
	"Mumbai":     {"India Gate", "Space Needle"},
	"Chennai":    {"Charminar"},
	"Hyderabad":  {"Marina Beach", "Taj Mahal"},
	"Ahmedabad":  {"Howrah Bridge"},
	"Mysuru":     {"Golconda Fort"},
	"Kochi":      {"Qutub Minar"},
	"Pune":       {"Meenakshi Temple", "Golden Temple"},
	"Nagpur":     {"Lotus Temple"},
	"Chandigarh": {"Mysore Palace"},
	"Kerala":     {"Rock Garden"},
	"Bhopal":     {"Victoria Memorial"},
	"Varanasi":   {"Vidhana Soudha"},
	"Jaisalmer":  {"Sun Temple"},

	// International cities
	"New York":      {"Eiffel Tower"},
	"London":        {"Statue of Liberty", "Sydney Opera House"},
	"Tokyo":         {"Big Ben"},
	"Beijing":       {"Colosseum"},
	"Bangkok":       {"Christ the Redeemer"},
	"Toronto":       {"Burj Khalifa"},
	"Dubai":         {"CN Tower"},
	"Amsterdam":     {"Petronas Towers"},
	"Cairo":         {"Leaning Tower of Pisa"},
	"San Francisco": {"Mount Fuji"},
	"Berlin":        {"Niagara Falls"},
	"Barcelona":     {"Louvre Museum"},
	"Moscow":        {"Stonehenge"},
	"Seoul":         {"Sagrada Familia", "Times Square"},
	"Cape Town":     {"Acropolis"},
	"Istanbul":      {"Big Ben"},
	"Riyadh":        {"Machu Picchu"},
	"Paris":         {"Taj Mahal"},
	"Singapore":     {"Christchurch Cathedral"},
	"Jakarta":       {"The Shard"},
	"Vienna":        {"Blue Mosque"},
	"Kathmandu":     {"Neuschwanstein Castle"},
	"Los Angeles":   {"Buckingham Palace"},
	"Dubai Airport": {"Moai Statues"},
}

// landmarkEndpoints names the special-cased quiz endpoints.
var landmarkEndpoints = map[string]string{
	"Gateway of India": "getFirstCityFlightNumber",
	"Taj Mahal":        "getSecondCityFlightNumber",
	"Eiffel Tower":     "getThirdCityFlightNumber",
	"Big Ben":          "getFourthCityFlightNumber",
}

// Client performs the side-channel lookups against external pages.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: lookupTimeout},
	}
}

// FlightNumber resolves the quiz's favourite city to its landmark endpoint
// and returns the flight number plus the destination, which is the first
// word of the endpoint's reply message.
func (c *Client) FlightNumber(ctx context.Context) (flight, destination string, err error) {
	var cityResp struct {
		Data struct {
			City string `json:"city"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/submissions/myFavouriteCity", &cityResp); err != nil {
		return "", "", err
	}
	city := cityResp.Data.City
	if city == "" {
		return "", "", errors.New("favourite-city response did not include a city")
	}

	landmarks, ok := cityLandmarks[city]
	if !ok {
		return "", "", fmt.Errorf("unknown city %q, mapping needs an update", city)
	}

	// The first landmark with a dedicated endpoint decides; otherwise default.
	endpoint := defaultFlightEndpoint
	for _, lm := range landmarks {
		if ep, ok := landmarkEndpoints[lm]; ok {
			endpoint = ep
			break
		}
	}

	var flightResp struct {
		Data struct {
			FlightNumber string `json:"flightNumber"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/teams/public/flights/"+endpoint, &flightResp); err != nil {
		return "", "", err
	}
	if flightResp.Data.FlightNumber == "" {
		return "", "", fmt.Errorf("no flightNumber in response from %s", endpoint)
	}

	if words := strings.Fields(flightResp.Message); len(words) > 0 {
		destination = words[0]
	}
	return flightResp.Data.FlightNumber, destination, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", url, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("lookup %s: unexpected status %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
