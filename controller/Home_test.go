package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"takarakuji-service/config"
	"takarakuji-service/mizuho"
	"takarakuji-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/japanese"
)

const lotoCSVFixture = `A52
第2078回ロト６,数字選択式全国自治宝くじ,令和8年2月19日,東京 宝くじドリーム館
支払期間,令和8年2月20日から令和9年2月19日まで
本数字,01,10,20,24,30,35,ボーナス数字,41
１等,2口,100000000円
２等,10口,1000万円
３等,100口,10000円
４等,1000口,1000円
５等,10000口,100円
`

const traditionalCSVFixture = `A01
第1090回 全国自治宝くじ,節分の100円くじ,令和8年2月20日,東京 宝くじドリーム館
支払期間,令和8年2月26日から令和9年2月25日まで
１等,1000万円,16組,139476
１等の前後賞,250万円,１等の前後の番号,,
２等,30万円,各組共通,113530
`

func shiftJIS(t *testing.T, text string) []byte {
	t.Helper()
	encoded, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatalf("encoding fixture to Shift-JIS: %v", err)
	}
	return encoded
}

func setupUpstream(t *testing.T) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/takarakuji/apl/txt/loto6/name.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("A1022078.CSV\nA1022077.CSV\n"))
	})
	mux.HandleFunc("/retail/takarakuji/loto/loto6/csv/A1022078.CSV", func(w http.ResponseWriter, r *http.Request) {
		w.Write(shiftJIS(t, lotoCSVFixture))
	})
	mux.HandleFunc("/retail/takarakuji/tsujyo/zenkoku/csv/zenkoku.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write(shiftJIS(t, traditionalCSVFixture))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	Client = mizuho.NewClient(server.URL, 2*time.Second)
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	reqBody, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	json.Unmarshal(body, &result)
	return resp.StatusCode, result
}

func TestGetGames(t *testing.T) {
	a := assert.New(t)

	app := fiber.New()
	app.Get("/games", GetGames)

	resp, err := app.Test(httptest.NewRequest("GET", "/games", nil), -1)
	a.NoError(err)
	a.Equal(200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	json.Unmarshal(body, &result)
	data := result["data"].(map[string]interface{})
	a.Len(data["games"], 3)
	a.Len(data["traditional_types"], 7)
}

func TestGetLatestDraw(t *testing.T) {
	a := assert.New(t)
	setupUpstream(t)

	app := fiber.New()
	app.Get("/draws/:game/latest", GetLatestDraw)

	resp, err := app.Test(httptest.NewRequest("GET", "/draws/loto6/latest", nil), -1)
	a.NoError(err)
	a.Equal(200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	json.Unmarshal(body, &result)
	draw := result["data"].(map[string]interface{})
	a.Equal(float64(2078), draw["draw_number"])

	// Unsupported game keys are user errors, not upstream ones.
	resp, _ = app.Test(httptest.NewRequest("GET", "/draws/powerball/latest", nil), -1)
	a.Equal(400, resp.StatusCode)
}

func TestCheckTickets(t *testing.T) {
	a := assert.New(t)
	setupUpstream(t)

	app := fiber.New()
	app.Post("/check", CheckTickets)

	status, result := postJSON(t, app, "/check", map[string]interface{}{
		"game":        "loto6",
		"draw_number": 2078,
		"tickets": []string{
			"01 10 20 24 30 41",
			"1 2 3",
			"38 39 40 41 42 43",
		},
	})
	a.Equal(200, status)

	data := result["data"].(map[string]interface{})
	rows := data["results"].([]interface{})
	a.Len(rows, 3)

	// Rows keep their input order and index.
	first := rows[0].(map[string]interface{})
	a.Equal(float64(0), first["index"])
	checked := first["result"].(map[string]interface{})
	a.Equal("2等", checked["rank"])
	a.Equal(true, checked["winning"])

	second := rows[1].(map[string]interface{})
	a.NotEmpty(second["error"])
	a.Nil(second["result"])

	third := rows[2].(map[string]interface{})
	a.Equal(false, third["result"].(map[string]interface{})["winning"])

	// One 2等 win at 1000万円.
	a.Equal("10,000,000円", data["payout_summary"])
}

func TestCheckTicketsRejectsBadPayload(t *testing.T) {
	a := assert.New(t)
	setupUpstream(t)

	app := fiber.New()
	app.Post("/check", CheckTickets)

	status, _ := postJSON(t, app, "/check", map[string]interface{}{
		"game": "loto6",
	})
	a.Equal(400, status)

	status, result := postJSON(t, app, "/check", map[string]interface{}{
		"game":    "keno",
		"tickets": []string{"1 2 3"},
	})
	a.Equal(400, status)
	a.Contains(result["message"], "unsupported game")
}

func TestCheckTicketsUpstreamFailureIs502(t *testing.T) {
	a := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	Client = mizuho.NewClient(server.URL, 2*time.Second)

	app := fiber.New()
	app.Post("/check", CheckTickets)

	status, _ := postJSON(t, app, "/check", map[string]interface{}{
		"game":    "loto6",
		"tickets": []string{"1 2 3 4 5 6"},
	})
	a.Equal(502, status)
}

func TestGetTraditionalDraws(t *testing.T) {
	a := assert.New(t)
	setupUpstream(t)

	app := fiber.New()
	app.Get("/traditional/:type", GetTraditionalDraws)

	resp, err := app.Test(httptest.NewRequest("GET", "/traditional/zenkoku", nil), -1)
	a.NoError(err)
	a.Equal(200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	json.Unmarshal(body, &result)
	draws := result["data"].([]interface{})
	a.Len(draws, 1)
}

func TestCheckTraditionalTickets(t *testing.T) {
	a := assert.New(t)
	setupUpstream(t)

	app := fiber.New()
	app.Post("/traditional/check", CheckTraditionalTickets)

	status, result := postJSON(t, app, "/traditional/check", map[string]interface{}{
		"lottery_type": "zenkoku",
		"draw_order":   1090,
		"tickets": []map[string]string{
			{"group": "16", "number": "139476"},
			{"group": "", "number": "000001"},
			{"group": "20", "number": "555555"},
		},
	})
	a.Equal(200, status)

	data := result["data"].(map[string]interface{})
	rows := data["results"].([]interface{})
	a.Len(rows, 3)

	first := rows[0].(map[string]interface{})
	checked := first["result"].(map[string]interface{})
	a.Equal(true, checked["winning"])
	a.Equal(float64(10_000_000), checked["total_payout_yen"])

	second := rows[1].(map[string]interface{})
	a.NotEmpty(second["error"])

	third := rows[2].(map[string]interface{})
	a.Equal(false, third["result"].(map[string]interface{})["winning"])

	a.Equal("10,000,000円", data["payout_summary"])
}

func init() {
	utils.IsTestMode = true
	config.Logger = zerolog.Nop()
}
