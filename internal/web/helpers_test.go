package web

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/BergomiStore/bergomi_store/internal/admin"
	"github.com/BergomiStore/bergomi_store/internal/apiclient"
	"github.com/BergomiStore/bergomi_store/internal/editor"
	"github.com/BergomiStore/bergomi_store/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

var errUnreachable = &apiclient.UnreachableError{URL: "http://api/", Err: errors.New("connection refused")}

// fakeAPI is an in-memory catalog API.
type fakeAPI struct {
	mu        sync.Mutex
	accounts  map[int64]models.Account
	order     []int64
	nextID    int64
	link      string
	listErr   error
	getErr    error
	linkErr   error
	pingErr   error
	verifyErr error
	writes    int
	lastInput *models.AccountInput
}

func newFakeAPI(accounts ...models.Account) *fakeAPI {
	f := &fakeAPI{accounts: map[int64]models.Account{}, nextID: 100}
	for _, a := range accounts {
		f.accounts[a.ID] = a
		f.order = append(f.order, a.ID)
	}
	return f
}

func (f *fakeAPI) ListAccounts(context.Context) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Account
	for _, id := range f.order {
		if a, ok := f.accounts[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetAccount(_ context.Context, id int64) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Not found."}
	}
	return &a, nil
}

func (f *fakeAPI) GetContactLink(context.Context) (string, error) {
	return f.link, f.linkErr
}

func (f *fakeAPI) SetContactLink(_ context.Context, link string) (*models.ContactLink, error) {
	if f.linkErr != nil {
		return nil, f.linkErr
	}
	f.link = link
	return &models.ContactLink{Link: link, IsActive: true}, nil
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) VerifyAdmin(context.Context, string) error { return f.verifyErr }

func (f *fakeAPI) store(id int64, in *models.AccountInput) *models.Account {
	acc := models.Account{
		ID: id, Name: in.Name, Price: in.Price, PromoPrice: in.PromoPrice, Rating: in.Rating,
		ImageNormal: in.ImageNormal, ImageHover: in.ImageHover, ImageDetail: in.ImageDetail,
		Description: in.Description, IsNew: in.IsNew, IsPromo: in.IsPromo, IsActive: true,
	}
	for i, c := range in.PlayerCards {
		acc.PlayerCards = append(acc.PlayerCards, models.PlayerCard{ID: int64(i + 1), Category: c.Category, Image: c.Image})
	}
	if _, ok := f.accounts[id]; !ok {
		f.order = append([]int64{id}, f.order...)
	}
	f.accounts[id] = acc
	f.writes++
	f.lastInput = in
	return &acc
}

func (f *fakeAPI) CreateAccount(_ context.Context, in *models.AccountInput) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.store(f.nextID, in), nil
}

func (f *fakeAPI) UpdateAccount(_ context.Context, id int64, in *models.AccountInput) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Not found."}
	}
	return f.store(id, in), nil
}

func (f *fakeAPI) DeleteAccount(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return &apiclient.APIError{StatusCode: http.StatusNotFound, Detail: "Not found."}
	}
	delete(f.accounts, id)
	f.writes++
	return nil
}

type testApp struct {
	router *gin.Engine
	api    *fakeAPI
	drafts *editor.Store
}

func newTestApp(t *testing.T, api *fakeAPI, strict bool) *testApp {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	drafts, err := editor.NewStore(16)
	require.NoError(t, err)

	r := gin.New()
	Routes(r,
		NewStorefrontHandler(api, renderer),
		NewAdminHandler(admin.NewManager(api), drafts, renderer),
		admin.NewGate(api, strict),
		renderer,
	)
	return &testApp{router: r, api: api, drafts: drafts}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) postMultipart(t *testing.T, path string, values map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.do(req)
}

func parseDoc(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc
}

func text(doc *goquery.Document, selector string) string {
	return strings.Join(strings.Fields(doc.Find(selector).First().Text()), " ")
}

// location returns the redirect target path and its flash message.
func location(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	u, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	return u.Path, u.Query().Get("msg")
}
