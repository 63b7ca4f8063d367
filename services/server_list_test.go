package services

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/repository"
	"github.com/akinalp/topluluk/ws"
)

// ─── In-memory fake'ler ───
//
// Service testleri SQLite'a değil repository interface'lerine dayanır.
// Fake'ler pipeline'ın ihtiyaç duyduğu okuma metodlarını gerçekçi
// şekilde uygular; testte kullanılmayan yazma metodları no-op'tur.

type fakeServerRepo struct {
	servers []models.Server
	members map[int64][]int64 // userID → üye olduğu sunucu id'leri
	counts  map[int64]int64   // serverID → üye sayısı
	nextID  int64
}

var _ repository.ServerRepository = (*fakeServerRepo)(nil)

func (f *fakeServerRepo) Create(ctx context.Context, server *models.Server) error {
	f.nextID++
	server.ID = f.nextID + 1000 // fixture id'leriyle çakışmasın
	f.servers = append(f.servers, *server)
	return nil
}
func (f *fakeServerRepo) GetByID(ctx context.Context, id int64) (*models.Server, error) {
	for _, s := range f.servers {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, pkg.ErrNotFound
}
func (f *fakeServerRepo) GetAll(ctx context.Context) ([]models.Server, error) {
	out := make([]models.Server, len(f.servers))
	copy(out, f.servers)
	return out, nil
}
func (f *fakeServerRepo) Update(ctx context.Context, server *models.Server) error {
	for i, s := range f.servers {
		if s.ID == server.ID {
			f.servers[i] = *server
			return nil
		}
	}
	return pkg.ErrNotFound
}
func (f *fakeServerRepo) Delete(ctx context.Context, id int64) error {
	for i, s := range f.servers {
		if s.ID == id {
			f.servers = append(f.servers[:i], f.servers[i+1:]...)
			return nil
		}
	}
	return pkg.ErrNotFound
}
func (f *fakeServerRepo) AddMember(ctx context.Context, serverID, userID int64) error {
	if f.members == nil {
		f.members = make(map[int64][]int64)
	}
	for _, id := range f.members[userID] {
		if id == serverID {
			return nil
		}
	}
	f.members[userID] = append(f.members[userID], serverID)
	return nil
}
func (f *fakeServerRepo) RemoveMember(ctx context.Context, serverID, userID int64) error {
	for i, id := range f.members[userID] {
		if id == serverID {
			f.members[userID] = append(f.members[userID][:i], f.members[userID][i+1:]...)
			return nil
		}
	}
	return pkg.ErrNotFound
}
func (f *fakeServerRepo) IsMember(ctx context.Context, serverID, userID int64) (bool, error) {
	for _, id := range f.members[userID] {
		if id == serverID {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeServerRepo) GetMemberServerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return f.members[userID], nil
}
func (f *fakeServerRepo) GetMemberCounts(ctx context.Context) (map[int64]int64, error) {
	return f.counts, nil
}

type fakeChannelRepo struct {
	byServer map[int64][]models.Channel
}

var _ repository.ChannelRepository = (*fakeChannelRepo)(nil)

func (f *fakeChannelRepo) Create(ctx context.Context, channel *models.Channel) error { return nil }
func (f *fakeChannelRepo) GetByID(ctx context.Context, id int64) (*models.Channel, error) {
	return nil, pkg.ErrNotFound
}
func (f *fakeChannelRepo) GetByServer(ctx context.Context, serverID int64) ([]models.Channel, error) {
	return f.byServer[serverID], nil
}
func (f *fakeChannelRepo) GetByServers(ctx context.Context, serverIDs []int64) (map[int64][]models.Channel, error) {
	out := make(map[int64][]models.Channel)
	for _, id := range serverIDs {
		if chs, ok := f.byServer[id]; ok {
			out[id] = chs
		}
	}
	return out, nil
}
func (f *fakeChannelRepo) Update(ctx context.Context, channel *models.Channel) error { return nil }
func (f *fakeChannelRepo) Delete(ctx context.Context, id int64) error                { return nil }

type fakeCategoryRepo struct {
	categories []models.Category
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func (f *fakeCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	c.ID = int64(len(f.categories) + 1)
	f.categories = append(f.categories, *c)
	return nil
}
func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, pkg.ErrNotFound
}
func (f *fakeCategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}
func (f *fakeCategoryRepo) Update(ctx context.Context, c *models.Category) error {
	for i, existing := range f.categories {
		if existing.ID == c.ID {
			f.categories[i] = *c
			return nil
		}
	}
	return pkg.ErrNotFound
}
func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return pkg.ErrNotFound
}

// recordingPublisher, broadcast edilen event'leri biriktirir.
type recordingPublisher struct {
	events []ws.Event
}

func (p *recordingPublisher) BroadcastToAll(event ws.Event) {
	p.events = append(p.events, event)
}
func (p *recordingPublisher) BroadcastToUser(userID int64, event ws.Event) {
	p.events = append(p.events, event)
}

func (p *recordingPublisher) ops() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Op
	}
	return out
}

type nopPublisher struct{}

func (nopPublisher) BroadcastToAll(event ws.Event)                {}
func (nopPublisher) BroadcastToUser(userID int64, event ws.Event) {}

// recordingImages, silinen/kaydedilen dosya URL'lerini takip eden fake.
type recordingImages struct {
	saved   []string
	removed []string
}

var _ ImageService = (*recordingImages)(nil)

func (f *recordingImages) SaveIcon(file multipart.File, header *multipart.FileHeader) (string, error) {
	url := "/api/uploads/icon-" + header.Filename
	f.saved = append(f.saved, url)
	return url, nil
}
func (f *recordingImages) SaveBanner(file multipart.File, header *multipart.FileHeader) (string, error) {
	url := "/api/uploads/banner-" + header.Filename
	f.saved = append(f.saved, url)
	return url, nil
}
func (f *recordingImages) Remove(fileURL string) {
	f.removed = append(f.removed, fileURL)
}

// ─── Test fixture ───

func newListFixture() (*fakeServerRepo, *fakeChannelRepo, ServerService) {
	// Üç sunucu: 1 ve 3 gaming, 2 music. Kullanıcı 10, 1 ve 2'ye üyedir;
	// 3'ün hiç üyesi yoktur (counts map'inde de bulunmaz).
	now := time.Now()
	srvRepo := &fakeServerRepo{
		servers: []models.Server{
			{ID: 1, Name: "go lounge", OwnerID: 10, CategoryID: 1, CategoryName: "gaming", CreatedAt: now},
			{ID: 2, Name: "synthwave", OwnerID: 11, CategoryID: 2, CategoryName: "music", CreatedAt: now},
			{ID: 3, Name: "speedrunners", OwnerID: 10, CategoryID: 1, CategoryName: "gaming", CreatedAt: now},
		},
		members: map[int64][]int64{
			10: {1, 2},
		},
		counts: map[int64]int64{
			1: 1,
			2: 1,
		},
	}
	chRepo := &fakeChannelRepo{
		byServer: map[int64][]models.Channel{
			1: {{ID: 100, ServerID: 1, OwnerID: 10, Name: "general"}},
		},
	}
	svc := NewServerService(srvRepo, &fakeCategoryRepo{}, chRepo, nil, nopPublisher{})
	return srvRepo, chRepo, svc
}

// ─── Parse testleri ───

func TestParseServerListQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  ServerListQuery
	}{
		{
			name:  "empty",
			query: "",
			want:  ServerListQuery{},
		},
		{
			name:  "all filters",
			query: "category=gaming&qty=5&by_user=true&with_num_members=true&by_server_id=3",
			want: ServerListQuery{
				Category: "gaming", Qty: 5, ByUser: true, WithNumMembers: true, ByServerID: "3",
			},
		},
		{
			name:  "only literal true enables booleans",
			query: "by_user=True&with_num_members=1",
			want:  ServerListQuery{},
		},
		{
			name:  "yes is not true",
			query: "by_user=yes&with_num_members=TRUE",
			want:  ServerListQuery{},
		},
		{
			name:  "malformed qty ignored",
			query: "qty=abc",
			want:  ServerListQuery{},
		},
		{
			name:  "zero qty ignored",
			query: "qty=0",
			want:  ServerListQuery{},
		},
		{
			name:  "negative qty ignored",
			query: "qty=-3",
			want:  ServerListQuery{},
		},
		{
			name:  "by_server_id kept raw even when malformed",
			query: "by_server_id=abc",
			want:  ServerListQuery{ByServerID: "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParseServerListQuery(params))
		})
	}
}

// ─── Pipeline testleri ───

func TestListNoFilters(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{}, 0)
	require.NoError(t, err)
	require.Len(t, servers, 3)

	// id'ye göre artan sıra
	assert.Equal(t, int64(1), servers[0].ID)
	assert.Equal(t, int64(2), servers[1].ID)
	assert.Equal(t, int64(3), servers[2].ID)

	// num_members istenmedi — annotation yok
	for _, s := range servers {
		assert.Nil(t, s.NumMembers)
	}

	// kanallar her zaman gömülü; kanalsız sunucuda boş slice (nil değil)
	assert.Len(t, servers[0].Channels, 1)
	assert.NotNil(t, servers[1].Channels)
	assert.Empty(t, servers[1].Channels)
}

func TestListCategoryFilter(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{Category: "gaming"}, 0)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, int64(1), servers[0].ID)
	assert.Equal(t, int64(3), servers[1].ID)
}

func TestListCategoryFilterIsCaseSensitive(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{Category: "Gaming"}, 0)
	require.NoError(t, err)
	assert.Empty(t, servers)
}

func TestListUnknownCategoryIsEmptyNotError(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{Category: "cooking"}, 0)
	require.NoError(t, err)
	assert.Empty(t, servers)
}

func TestListByUserRequiresAuth(t *testing.T) {
	_, _, svc := newListFixture()

	_, err := svc.List(context.Background(), ServerListQuery{ByUser: true}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestListByUser(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{ByUser: true}, 10)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, int64(1), servers[0].ID)
	assert.Equal(t, int64(2), servers[1].ID)

	// üyeliği olmayan kullanıcı için boş sonuç, hata değil
	servers, err = svc.List(context.Background(), ServerListQuery{ByUser: true}, 77)
	require.NoError(t, err)
	assert.Empty(t, servers)
}

// Kategori ve üyelik filtreleri birlikte: gaming'de iki sunucu var ama
// kullanıcı 10 yalnızca 1'e üyedir.
func TestListCategoryAndMembership(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{
		Category: "gaming", ByUser: true,
	}, 10)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, int64(1), servers[0].ID)
}

func TestListWithNumMembers(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{WithNumMembers: true}, 0)
	require.NoError(t, err)
	require.Len(t, servers, 3)

	require.NotNil(t, servers[0].NumMembers)
	assert.Equal(t, int64(1), *servers[0].NumMembers)
	require.NotNil(t, servers[1].NumMembers)
	assert.Equal(t, int64(1), *servers[1].NumMembers)

	// üyesiz sunucuda annotation 0'dır ama YAZILIR (alan mevcut)
	require.NotNil(t, servers[2].NumMembers)
	assert.Equal(t, int64(0), *servers[2].NumMembers)
}

func TestListQty(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{Qty: 2}, 0)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, int64(1), servers[0].ID)
	assert.Equal(t, int64(2), servers[1].ID)
}

func TestListQtyLargerThanResult(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{Qty: 99}, 0)
	require.NoError(t, err)
	assert.Len(t, servers, 3)
}

func TestListByServerID(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{ByServerID: "2"}, 0)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, int64(2), servers[0].ID)
}

func TestListByServerIDUnknown(t *testing.T) {
	_, _, svc := newListFixture()

	_, err := svc.List(context.Background(), ServerListQuery{ByServerID: "999"}, 0)
	require.Error(t, err)

	var invalidID *pkg.InvalidServerIDError
	require.True(t, errors.As(err, &invalidID))
	assert.Equal(t, "999", invalidID.ID)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestListByServerIDMalformed(t *testing.T) {
	_, _, svc := newListFixture()

	_, err := svc.List(context.Background(), ServerListQuery{ByServerID: "abc"}, 0)
	require.Error(t, err)

	var invalidID *pkg.InvalidServerIDError
	require.True(t, errors.As(err, &invalidID))
	assert.Equal(t, "abc", invalidID.ID)
	assert.Contains(t, err.Error(), "server with id abc does not exist")
}

// Aşama sırası kontratı: qty, by_server_id'den ÖNCE uygulanır.
// id=3 mevcut bir sunucudur ama qty=1 snapshot'ı [1]'e indirdiği için
// by_server_id=3 artık eşleşmez ve hata döner.
func TestListQtyAppliedBeforeServerID(t *testing.T) {
	_, _, svc := newListFixture()

	_, err := svc.List(context.Background(), ServerListQuery{Qty: 1, ByServerID: "3"}, 0)
	require.Error(t, err)

	var invalidID *pkg.InvalidServerIDError
	require.True(t, errors.As(err, &invalidID))
	assert.Equal(t, "3", invalidID.ID)

	// id truncate penceresinin içindeyse çalışır
	servers, err := svc.List(context.Background(), ServerListQuery{Qty: 1, ByServerID: "1"}, 0)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, int64(1), servers[0].ID)
}

func TestListCombinedFilters(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{
		Category:       "gaming",
		ByUser:         true,
		WithNumMembers: true,
		Qty:            1,
	}, 10)
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, int64(1), servers[0].ID)
	require.NotNil(t, servers[0].NumMembers)
	assert.Equal(t, int64(1), *servers[0].NumMembers)
}

// num_members alanı istenmediyse JSON çıktısında HİÇ bulunmamalı —
// null ya da 0 olarak bile.
func TestNumMembersAbsentFromJSON(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{}, 0)
	require.NoError(t, err)

	data, err := json.Marshal(servers)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "num_members"))

	// istenirse alan mevcut
	annotated, err := svc.List(context.Background(), ServerListQuery{WithNumMembers: true}, 0)
	require.NoError(t, err)
	data, err = json.Marshal(annotated)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"num_members"`))
}

// CategoryName pipeline içindir, API yanıtına sızmamalı.
func TestCategoryNameNotSerialized(t *testing.T) {
	_, _, svc := newListFixture()

	servers, err := svc.List(context.Background(), ServerListQuery{}, 0)
	require.NoError(t, err)

	data, err := json.Marshal(servers)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "gaming"))
}

// ─── Saf aşama birim testleri ───

func TestTruncateDoesNotMutateInput(t *testing.T) {
	in := []models.Server{{ID: 1}, {ID: 2}, {ID: 3}}
	out := truncate(in, 2)

	require.Len(t, out, 2)
	assert.Len(t, in, 3)

	// full-slice expression: out'a append in'in 3. elemanını ezmemeli
	out = append(out, models.Server{ID: 99})
	assert.Equal(t, int64(3), in[2].ID)
}

func TestAnnotateMemberCountsLeavesInputUntouched(t *testing.T) {
	in := []models.Server{{ID: 1}, {ID: 2}}
	out := annotateMemberCounts(in, map[int64]int64{1: 5})

	assert.Nil(t, in[0].NumMembers)
	require.NotNil(t, out[0].NumMembers)
	assert.Equal(t, int64(5), *out[0].NumMembers)
	require.NotNil(t, out[1].NumMembers)
	assert.Equal(t, int64(0), *out[1].NumMembers)
}
