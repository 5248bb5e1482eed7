package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/game"
	"github.com/ericogr/war-cards/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetSessionSecret("test-secret")
}

// flakyProvider wraps a provider and fails while broken is set.
type flakyProvider struct {
	deck.Provider
	broken bool
}

func (p *flakyProvider) NewDeck(ctx context.Context) (deck.Deck, error) {
	if p.broken {
		return deck.Deck{}, &deck.ProviderError{Op: "new", Err: errors.New("offline")}
	}
	return p.Provider.NewDeck(ctx)
}

func (p *flakyProvider) DrawTwo(ctx context.Context, id string) (deck.Draw, error) {
	if p.broken {
		return deck.Draw{}, &deck.ProviderError{Op: "draw", DeckID: id, Err: errors.New("offline")}
	}
	return p.Provider.DrawTwo(ctx, id)
}

type testServer struct {
	router   *gin.Engine
	provider *flakyProvider
	hub      *Hub
	cookie   *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	db, err := storage.OpenAndMigrate(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	p := &flakyProvider{Provider: deck.NewSeededMemoryProvider(1)}
	hub := NewHub()
	h := NewMatchHandler(storage.NewSQLiteRepository(db), p, hub)
	return &testServer{router: NewRouter(h, []string{"*"}), provider: p, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, name string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/session", gin.H{"name": name})
	if w.Code != http.StatusOK {
		t.Fatalf("session: %d %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.CookieSessionName {
			s.cookie = c
		}
	}
	if s.cookie == nil {
		t.Fatalf("no session cookie set")
	}
	var out struct {
		PlayerUUID string `json:"player_uuid"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out.PlayerUUID
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) MatchView {
	t.Helper()
	var v MatchView
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode view: %v (%s)", err, w.Body.String())
	}
	return v
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(t, http.MethodPost, "/api/matches", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	s.cookie = &http.Cookie{Name: constants.CookieSessionName, Value: "a.b.c"}
	if w := s.do(t, http.MethodPost, "/api/matches", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestSessionRejectsBadName(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(t, http.MethodPost, "/api/session", gin.H{"name": "<script>"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestMatchLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "Ann")

	w := s.do(t, http.MethodPost, "/api/matches", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	v := decodeView(t, w)
	if v.Header != game.DefaultHeader || v.State.RemainingCards != game.DeckSize || v.DrawDisabled {
		t.Fatalf("unexpected initial view %+v", v)
	}
	if v.PlayerName != "Ann" || v.ComputerCard != nil || v.LastOutcome != nil {
		t.Fatalf("unexpected initial view %+v", v)
	}
	code := v.Code

	w = s.do(t, http.MethodPost, "/api/matches/"+strings.ToLower(code)+"/reverse", nil)
	if w.Code != http.StatusOK || !decodeView(t, w).State.ReverseMode {
		t.Fatalf("reverse: %d %s", w.Code, w.Body.String())
	}

	for i := 0; i < game.DeckSize/2; i++ {
		w = s.do(t, http.MethodPost, "/api/matches/"+code+"/draw", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("draw %d: %d %s", i, w.Code, w.Body.String())
		}
		v = decodeView(t, w)
		if v.ComputerCard == nil || v.PlayerCard == nil || v.Hints == nil || v.LastOutcome == nil {
			t.Fatalf("draw %d: incomplete view %+v", i, v)
		}
		if v.PlayerCard.Symbol != v.PlayerCard.Suit.Symbol() || v.PlayerCard.PowerUp == "" {
			t.Fatalf("draw %d: card decorations missing %+v", i, v.PlayerCard)
		}
		if v.Hints.Shake != v.LastOutcome.IsWar {
			t.Fatalf("draw %d: shake hint %v for war=%v", i, v.Hints.Shake, v.LastOutcome.IsWar)
		}
	}
	if v.Status != game.StatusFinished || !v.DrawDisabled || v.State.RemainingCards != 0 {
		t.Fatalf("expected finished match, got %+v", v)
	}
	if v.Result == game.ResultNone {
		t.Fatalf("expected a result")
	}

	if w = s.do(t, http.MethodPost, "/api/matches/"+code+"/draw", nil); w.Code != http.StatusConflict {
		t.Fatalf("draw after finish: expected 409, got %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/player-stats", nil)
	var stats map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &stats)
	if stats["games_played"].(float64) != 1 {
		t.Fatalf("expected one game played, got %v", stats)
	}

	w = s.do(t, http.MethodPost, "/api/matches/"+code+"/new-deck", nil)
	v = decodeView(t, w)
	if w.Code != http.StatusOK || v.Status != game.StatusInProgress || !v.State.ReverseMode || v.Header != game.DefaultHeader {
		t.Fatalf("new deck: %d %+v", w.Code, v)
	}
}

func TestProviderFailureReturns503AndKeepsState(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "Ann")
	v := decodeView(t, s.do(t, http.MethodPost, "/api/matches", nil))
	before := decodeView(t, s.do(t, http.MethodPost, "/api/matches/"+v.Code+"/draw", nil))

	s.provider.broken = true
	w := s.do(t, http.MethodPost, "/api/matches/"+v.Code+"/draw", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["header"] != constants.ErrDrawingCards {
		t.Fatalf("unexpected header %q", body["header"])
	}
	w = s.do(t, http.MethodPost, "/api/matches/"+v.Code+"/new-deck", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusServiceUnavailable || body["header"] != constants.ErrLoadingDeck {
		t.Fatalf("new deck failure: %d %v", w.Code, body)
	}

	after := decodeView(t, s.do(t, http.MethodGet, "/api/matches/"+v.Code, nil))
	if after.State != before.State || after.RoundCount != before.RoundCount {
		t.Fatalf("state changed: %+v vs %+v", after.State, before.State)
	}
}

func TestMatchOwnershipAndValidation(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "Ann")
	v := decodeView(t, s.do(t, http.MethodPost, "/api/matches", nil))

	if w := s.do(t, http.MethodGet, "/api/matches/bad!", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/matches/ZZZZZZZZ", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	s.cookie = nil
	s.login(t, "Bob")
	if w := s.do(t, http.MethodPost, "/api/matches/"+v.Code+"/draw", nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestLeaderboardAndVersion(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "Ann")
	w := s.do(t, http.MethodGet, "/api/leaderboard?limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard: %d", w.Code)
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil || len(rows) != 1 {
		t.Fatalf("unexpected leaderboard %s", w.Body.String())
	}
	if _, ok := rows[0]["created_at"]; !ok {
		t.Fatalf("expected snake_case timestamps: %v", rows[0])
	}
	if w := s.do(t, http.MethodGet, "/api/version", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "version") {
		t.Fatalf("version: %d %s", w.Code, w.Body.String())
	}
}

func TestMatchFeedReceivesDraws(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "Ann")
	v := decodeView(t, s.do(t, http.MethodPost, "/api/matches", nil))

	srv := httptest.NewServer(s.router)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/matches/" + v.Code + "/ws"
	hdr := http.Header{}
	hdr.Set("Cookie", s.cookie.Name+"="+s.cookie.Value)
	conn, _, err := websocket.DefaultDialer.Dial(url, hdr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first MatchView
	if err := conn.ReadJSON(&first); err != nil || first.Code != v.Code {
		t.Fatalf("initial view: %+v, %v", first, err)
	}
	// wait for the subscription to be registered before drawing
	for i := 0; i < 100 && s.hub.Subscribers(v.Code) == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}

	drawn := decodeView(t, s.do(t, http.MethodPost, "/api/matches/"+v.Code+"/draw", nil))
	var pushed MatchView
	if err := conn.ReadJSON(&pushed); err != nil {
		t.Fatalf("read pushed view: %v", err)
	}
	if pushed.RoundCount != 1 || pushed.State != drawn.State {
		t.Fatalf("pushed view %+v does not match draw %+v", pushed, drawn)
	}
}
