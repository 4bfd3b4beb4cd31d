package mizuho

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"takarakuji-service/model"

	"golang.org/x/text/encoding/japanese"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// DataError means the upstream source was unreachable or its content was
// malformed. The request that triggered it fails; there is no internal retry.
type DataError struct {
	Message string
	Err     error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DataError) Unwrap() error { return e.Err }

func dataErrorf(format string, args ...interface{}) *DataError {
	return &DataError{Message: fmt.Sprintf(format, args...)}
}

var (
	filenamePattern      = regexp.MustCompile(`A\d+\.CSV`)
	filenameShapePattern = regexp.MustCompile(`^A\d+\.CSV$`)
	drawNumberPattern    = regexp.MustCompile(`^A10\d(\d{4})\.CSV$`)
)

// Client fetches draw CSV documents from the Mizuho takarakuji site.
// Safe for concurrent use; every call is a single blocking round trip.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetLatestDraw resolves the newest published draw for game.
func (c *Client) GetLatestDraw(ctx context.Context, game string) (model.DrawResult, error) {
	filenames, err := c.GetRecentFilenames(ctx, game, 1)
	if err != nil {
		return model.DrawResult{}, err
	}
	if len(filenames) == 0 {
		return model.DrawResult{}, dataErrorf("no published draws found for %s", game)
	}
	return c.GetDrawByFilename(ctx, game, filenames[0])
}

// GetDraw fetches a draw by its number. The filename is deterministic:
// A10<prefix> followed by the zero-padded draw number.
func (c *Client) GetDraw(ctx context.Context, game string, drawNumber int) (model.DrawResult, error) {
	spec, err := model.GetGameSpec(game)
	if err != nil {
		return model.DrawResult{}, err
	}
	filename := fmt.Sprintf("A10%s%04d.CSV", spec.Prefix, drawNumber)
	return c.GetDrawByFilename(ctx, game, filename)
}

// GetRecentFilenames lists up to limit draw CSV filenames for game, most
// recent first. A non-positive limit returns everything the index lists.
func (c *Client) GetRecentFilenames(ctx context.Context, game string, limit int) ([]string, error) {
	if _, err := model.GetGameSpec(game); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/takarakuji/apl/txt/%s/name.txt", c.baseURL, game)
	text, err := c.downloadText(ctx, url)
	if err != nil {
		return nil, err
	}

	var filenames []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if match := filenamePattern.FindString(strings.ToUpper(line)); match != "" {
			filenames = append(filenames, match)
		}
		if limit > 0 && len(filenames) >= limit {
			break
		}
	}
	return filenames, nil
}

// GetDrawByFilename fetches and parses one draw CSV.
func (c *Client) GetDrawByFilename(ctx context.Context, game string, filename string) (model.DrawResult, error) {
	if _, err := model.GetGameSpec(game); err != nil {
		return model.DrawResult{}, err
	}
	fileName := strings.ToUpper(strings.TrimSpace(filename))
	if !filenameShapePattern.MatchString(fileName) {
		return model.DrawResult{}, dataErrorf("invalid draw filename: %s", filename)
	}

	sourceURL := fmt.Sprintf("%s/retail/takarakuji/loto/%s/csv/%s", c.baseURL, game, fileName)
	text, err := c.downloadText(ctx, sourceURL)
	if err != nil {
		return model.DrawResult{}, err
	}
	return ParseLotoDrawCSV(game, text, sourceURL)
}

// ExtractDrawNumber parses the zero-padded draw number suffix out of a
// per-draw CSV filename.
func (c *Client) ExtractDrawNumber(filename string) (int, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(filename))
	match := drawNumberPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, dataErrorf("cannot extract draw number from filename: %s", filename)
	}
	number := 0
	for _, r := range match[1] {
		number = number*10 + int(r-'0')
	}
	return number, nil
}

// GetLatestTraditionalDraw returns the newest section of the per-type CSV.
func (c *Client) GetLatestTraditionalDraw(ctx context.Context, lotteryType string) (model.TraditionalDrawResult, error) {
	draws, err := c.GetTraditionalDraws(ctx, lotteryType, 1)
	if err != nil {
		return model.TraditionalDrawResult{}, err
	}
	if len(draws) == 0 {
		return model.TraditionalDrawResult{}, dataErrorf("no results found for type %s", lotteryType)
	}
	return draws[0], nil
}

// GetTraditionalDraw finds a specific draw order within the per-type CSV.
func (c *Client) GetTraditionalDraw(ctx context.Context, lotteryType string, drawOrder int) (model.TraditionalDrawResult, error) {
	draws, err := c.GetTraditionalDraws(ctx, lotteryType, 0)
	if err != nil {
		return model.TraditionalDrawResult{}, err
	}
	for _, draw := range draws {
		if draw.DrawOrder == drawOrder {
			return draw, nil
		}
	}
	return model.TraditionalDrawResult{}, dataErrorf("draw %d not found for type %s", drawOrder, lotteryType)
}

// GetTraditionalDraws fetches the one document published per lottery type and
// parses every section in it. Sections arrive most recent first and are not
// re-sorted; a non-positive limit returns all of them.
func (c *Client) GetTraditionalDraws(ctx context.Context, lotteryType string, limit int) ([]model.TraditionalDrawResult, error) {
	if _, err := model.GetTraditionalType(lotteryType); err != nil {
		return nil, err
	}
	sourceURL := fmt.Sprintf("%s/retail/takarakuji/tsujyo/%s/csv/%s.csv", c.baseURL, lotteryType, lotteryType)
	text, err := c.downloadText(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	draws, err := ParseTraditionalCSV(lotteryType, text, sourceURL)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(draws) > limit {
		draws = draws[:limit]
	}
	return draws, nil
}

func (c *Client) downloadText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &DataError{Message: "building request failed: " + url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &DataError{Message: "download failed: " + url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", dataErrorf("download failed: %s returned status %d", url, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &DataError{Message: "reading response failed: " + url, Err: err}
	}
	text, ok := decodeContent(content)
	if !ok {
		return "", dataErrorf("cannot decode source content: %s", url)
	}
	return text, nil
}

// decodeContent tries each supported encoding in order and stops at the
// first clean decode. The ShiftJIS decoder in x/text covers Code Page 932
// as well, so the fallback chain is Shift-JIS family first, then UTF-8.
func decodeContent(content []byte) (string, bool) {
	attempts := []func([]byte) (string, bool){
		decodeShiftJIS,
		decodeUTF8,
	}
	for _, attempt := range attempts {
		if text, ok := attempt(content); ok {
			return text, true
		}
	}
	return "", false
}

func decodeShiftJIS(content []byte) (string, bool) {
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(content)
	if err != nil {
		return "", false
	}
	// The decoder substitutes U+FFFD for bytes outside Shift-JIS instead of
	// failing; treat any substitution as a failed attempt.
	if strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", false
	}
	return string(decoded), true
}

func decodeUTF8(content []byte) (string, bool) {
	if !utf8.Valid(content) {
		return "", false
	}
	return string(content), true
}
