package reporters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/reaandrew/boostfindings/core"
	log "github.com/sirupsen/logrus"
)

const DefaultHttpBatchSize = 100

type ReportIdGenerator interface {
	Generate() string
}

type UuidReportGenerator struct {
}

func (u UuidReportGenerator) Generate() string {
	return uuid.New().String()
}

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHttpClient struct {
}

func (d DefaultHttpClient) Do(req *http.Request) (*http.Response, error) {
	response, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("Error sending request to %s: %v", req.URL, err)
	} else {
		log.Debugf("Sent %s %s: %s", req.Method, req.URL, response.Status)
	}
	return response, err
}

func NewDefaultHttpReporter(baseUrl string) HttpReporter {
	return HttpReporter{
		BaseURL:           strings.TrimRight(baseUrl, "/"),
		HTTPClient:        DefaultHttpClient{},
		ReportIdGenerator: UuidReportGenerator{},
		BatchSize:         DefaultHttpBatchSize,
	}
}

// HttpReporter posts rows in batches to a collector and then marks the report complete.
type HttpReporter struct {
	BaseURL           string
	HTTPClient        HttpClient
	ReportIdGenerator ReportIdGenerator
	BatchSize         int
}

type rowBatch struct {
	Columns []string       `json:"columns"`
	Rows    []core.FlatRow `json:"rows"`
}

type completion struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

func (h HttpReporter) Report(table core.ResultTable) error {
	reportId := h.ReportIdGenerator.Generate()
	log.Printf("Reporting %d findings to %s as report %s", table.Len(), h.BaseURL, reportId)

	batchSize := h.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultHttpBatchSize
	}

	for start := 0; start < table.Len(); start += batchSize {
		end := start + batchSize
		if end > table.Len() {
			end = table.Len()
		}
		batch := rowBatch{Columns: table.Columns(), Rows: table.Rows[start:end]}
		if err := h.postBatch(batch, reportId); err != nil {
			return fmt.Errorf("failed to report rows %d-%d: %w", start, end-1, err)
		}
	}

	if err := h.signalCompletion(reportId, table.Len()); err != nil {
		return fmt.Errorf("failed to signal completion: %w", err)
	}

	return nil
}

func (h HttpReporter) postBatch(batch rowBatch, reportId string) error {
	url := fmt.Sprintf("%s/reports/%s/results", h.BaseURL, reportId)
	return h.send(http.MethodPost, url, batch)
}

func (h HttpReporter) signalCompletion(reportId string, count int) error {
	url := fmt.Sprintf("%s/report/%s", h.BaseURL, reportId)
	return h.send(http.MethodPatch, url, completion{Status: "completed", Count: count})
}

func (h HttpReporter) send(method, url string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		return &core.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &core.HTTPError{StatusCode: resp.StatusCode}
	}

	return nil
}
