package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BergomiStore/bergomi_store/internal/apiclient"
	"github.com/BergomiStore/bergomi_store/internal/editor"
	"github.com/BergomiStore/bergomi_store/internal/models"
)

type fakeAPI struct {
	pingErr   error
	writeErr  error
	verifyErr error
	calls     []string
	created   *models.AccountInput
	updatedID int64
	link      string
}

func (f *fakeAPI) Ping(context.Context) error {
	f.calls = append(f.calls, "ping")
	return f.pingErr
}

func (f *fakeAPI) ListAccounts(context.Context) ([]models.Account, error) {
	f.calls = append(f.calls, "list")
	return []models.Account{{ID: 1}}, nil
}

func (f *fakeAPI) GetAccount(_ context.Context, id int64) (*models.Account, error) {
	f.calls = append(f.calls, "get")
	return &models.Account{ID: id, Name: "Loaded", PlayerCards: []models.PlayerCard{{ID: 1, Category: models.CategoryForwards, Image: "f"}}}, nil
}

func (f *fakeAPI) CreateAccount(_ context.Context, in *models.AccountInput) (*models.Account, error) {
	f.calls = append(f.calls, "create")
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.created = in
	return &models.Account{ID: 10, Name: in.Name}, nil
}

func (f *fakeAPI) UpdateAccount(_ context.Context, id int64, in *models.AccountInput) (*models.Account, error) {
	f.calls = append(f.calls, "update")
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.updatedID = id
	return &models.Account{ID: id, Name: in.Name}, nil
}

func (f *fakeAPI) DeleteAccount(context.Context, int64) error {
	f.calls = append(f.calls, "delete")
	return f.writeErr
}

func (f *fakeAPI) GetContactLink(context.Context) (string, error) { return f.link, nil }

func (f *fakeAPI) SetContactLink(_ context.Context, link string) (*models.ContactLink, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.link = link
	return &models.ContactLink{Link: link, IsActive: true}, nil
}

func (f *fakeAPI) VerifyAdmin(context.Context, string) error { return f.verifyErr }

func validDraft() *editor.Draft {
	d := editor.NewDraft()
	d.Name = "Account"
	d.Price = decimal.NewFromInt(100)
	d.ImageNormal, d.ImageHover, d.ImageDetail = "n", "h", "d"
	d.Description = "desc"
	return d
}

func TestSaveRejectsBeforeNetwork(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api)

	d := validDraft()
	d.Price = decimal.Zero
	_, err := m.Save(context.Background(), d)
	assert.Equal(t, FailureValidation, Classify(err))
	assert.Equal(t, "Price must be greater than 0", Describe(err))

	d = validDraft()
	d.IsPromo = true
	d.PromoPrice = decimal.NewNullDecimal(decimal.NewFromInt(100))
	_, err = m.Save(context.Background(), d)
	assert.Equal(t, FailureValidation, Classify(err))

	assert.Empty(t, api.calls)
}

func TestSaveUnreachable(t *testing.T) {
	api := &fakeAPI{pingErr: &apiclient.UnreachableError{URL: "http://x/", Err: errors.New("refused")}}
	_, err := NewManager(api).Save(context.Background(), validDraft())

	assert.Equal(t, FailureUnreachable, Classify(err))
	assert.Equal(t, MsgServerNotRunning, Describe(err))
	assert.Equal(t, []string{"ping"}, api.calls)
}

func TestSaveCreatesNew(t *testing.T) {
	api := &fakeAPI{}
	acc, err := NewManager(api).Save(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(10), acc.ID)
	assert.Equal(t, []string{"ping", "create"}, api.calls)
	assert.Equal(t, "Account", api.created.Name)
}

func TestSaveUpdatesExisting(t *testing.T) {
	api := &fakeAPI{}
	d := validDraft()
	d.AccountID = 4
	_, err := NewManager(api).Save(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, []string{"ping", "update"}, api.calls)
	assert.Equal(t, int64(4), api.updatedID)
}

func TestSaveRejected(t *testing.T) {
	api := &fakeAPI{writeErr: &apiclient.APIError{StatusCode: 400, FieldErrors: map[string][]string{"price": {"too big"}}}}
	_, err := NewManager(api).Save(context.Background(), validDraft())
	assert.Equal(t, FailureRejected, Classify(err))
	assert.Equal(t, "Validation errors:\nprice: too big", Describe(err))
}

func TestOpen(t *testing.T) {
	d, err := NewManager(&fakeAPI{}).Open(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.AccountID)
	assert.Len(t, d.CardsIn(models.CategoryForwards), 1)
}

func TestDeleteWrapsError(t *testing.T) {
	api := &fakeAPI{writeErr: &apiclient.APIError{StatusCode: 404, Detail: "Not found."}}
	err := NewManager(api).Delete(context.Background(), 2)
	assert.Equal(t, FailureRejected, Classify(err))
	assert.Equal(t, "Error: Not found.", Describe(err))
}

func TestSetContactLinkTrims(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api)
	require.NoError(t, m.SetContactLink(context.Background(), "  https://chat.example/g "))
	link, err := m.ContactLink(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example/g", link)
}

func TestDescribe(t *testing.T) {
	long := strings.Repeat("x", 300)
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"detail", &apiclient.APIError{StatusCode: 403, Detail: "nope"}, "Error: nope"},
		{"raw body", &apiclient.APIError{StatusCode: 502, Body: []byte("bad gateway")}, "Server error (502): bad gateway"},
		{"truncated", &apiclient.APIError{StatusCode: 500, Body: []byte(long)}, "Server error (500): " + long[:200]},
		{"empty 500", &apiclient.APIError{StatusCode: 500}, "Server error (500)"},
		{"empty 400", &apiclient.APIError{StatusCode: http.StatusBadRequest}, MsgUnknownServer},
		{"unexpected", fmt.Errorf("decode: %w", errors.New("eof")), "Unexpected error: decode: eof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}

func TestGateGrantsOnFailure(t *testing.T) {
	g := NewGate(&fakeAPI{verifyErr: &apiclient.APIError{StatusCode: 401}}, false)
	d := g.Check(context.Background(), "bad")
	assert.True(t, d.Granted)
	assert.False(t, d.Verified)
	assert.Error(t, d.Err)

	g = NewGate(&fakeAPI{verifyErr: &apiclient.UnreachableError{Err: errors.New("down")}}, false)
	assert.True(t, g.Check(context.Background(), "any").Granted)
}

func TestGateGrantsOnSuccess(t *testing.T) {
	d := NewGate(&fakeAPI{}, true).Check(context.Background(), "good")
	assert.True(t, d.Granted)
	assert.True(t, d.Verified)
}

func TestGateStrictFailsClosed(t *testing.T) {
	g := NewGate(&fakeAPI{verifyErr: &apiclient.APIError{StatusCode: 401}}, true)
	assert.False(t, g.Check(context.Background(), "bad").Granted)
	assert.False(t, g.Check(context.Background(), "").Granted)
	assert.True(t, g.Strict())
}
