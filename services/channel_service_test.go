package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
	"github.com/akinalp/topluluk/repository"
	"github.com/akinalp/topluluk/ws"
)

// fakeChannelStore, yazılabilir in-memory channel repo'su.
// (fakeChannelRepo salt-okunur listing testleri içindir.)
type fakeChannelStore struct {
	channels []models.Channel
	nextID   int64
}

var _ repository.ChannelRepository = (*fakeChannelStore)(nil)

func (f *fakeChannelStore) Create(ctx context.Context, channel *models.Channel) error {
	f.nextID++
	channel.ID = f.nextID
	f.channels = append(f.channels, *channel)
	return nil
}
func (f *fakeChannelStore) GetByID(ctx context.Context, id int64) (*models.Channel, error) {
	for _, ch := range f.channels {
		if ch.ID == id {
			return &ch, nil
		}
	}
	return nil, pkg.ErrNotFound
}
func (f *fakeChannelStore) GetByServer(ctx context.Context, serverID int64) ([]models.Channel, error) {
	var out []models.Channel
	for _, ch := range f.channels {
		if ch.ServerID == serverID {
			out = append(out, ch)
		}
	}
	return out, nil
}
func (f *fakeChannelStore) GetByServers(ctx context.Context, serverIDs []int64) (map[int64][]models.Channel, error) {
	out := make(map[int64][]models.Channel)
	for _, id := range serverIDs {
		chs, _ := f.GetByServer(ctx, id)
		if chs != nil {
			out[id] = chs
		}
	}
	return out, nil
}
func (f *fakeChannelStore) Update(ctx context.Context, channel *models.Channel) error {
	for i, ch := range f.channels {
		if ch.ID == channel.ID {
			f.channels[i] = *channel
			return nil
		}
	}
	return pkg.ErrNotFound
}
func (f *fakeChannelStore) Delete(ctx context.Context, id int64) error {
	for i, ch := range f.channels {
		if ch.ID == id {
			f.channels = append(f.channels[:i], f.channels[i+1:]...)
			return nil
		}
	}
	return pkg.ErrNotFound
}

func newChannelFixture() (*fakeChannelStore, *recordingPublisher, ChannelService) {
	srvRepo := &fakeServerRepo{
		servers: []models.Server{
			{ID: 1, Name: "lounge", OwnerID: 10, CategoryID: 1, CategoryName: "gaming", CreatedAt: time.Now()},
		},
	}
	store := &fakeChannelStore{}
	pub := &recordingPublisher{}
	svc := NewChannelService(store, srvRepo, pub)
	return store, pub, svc
}

func TestCreateChannelLowercasesName(t *testing.T) {
	store, pub, svc := newChannelFixture()

	channel, err := svc.Create(context.Background(), 1, 10, &models.CreateChannelRequest{
		Name: "  General Chat  ", Topic: "hoş geldiniz",
	})
	require.NoError(t, err)
	assert.Equal(t, "general chat", channel.Name)
	assert.Equal(t, int64(10), channel.OwnerID)

	// normalize edilmiş isim DB'ye de öyle gitti
	assert.Equal(t, "general chat", store.channels[0].Name)
	assert.Equal(t, []string{ws.OpChannelCreate}, pub.ops())
}

func TestCreateChannelServerOwnerOnly(t *testing.T) {
	_, pub, svc := newChannelFixture()

	_, err := svc.Create(context.Background(), 1, 99, &models.CreateChannelRequest{Name: "genel"})
	assert.ErrorIs(t, err, pkg.ErrForbidden)
	assert.Empty(t, pub.events)
}

func TestCreateChannelUnknownServer(t *testing.T) {
	_, _, svc := newChannelFixture()

	_, err := svc.Create(context.Background(), 999, 10, &models.CreateChannelRequest{Name: "genel"})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUpdateChannelAuthorization(t *testing.T) {
	store, _, svc := newChannelFixture()

	// kanal sahibi 20, sunucu sahibi 10
	require.NoError(t, store.Create(context.Background(), &models.Channel{
		ServerID: 1, OwnerID: 20, Name: "genel",
	}))

	name := "YENI"
	// yabancı → forbidden
	_, err := svc.Update(context.Background(), 1, 99, &models.UpdateChannelRequest{Name: &name})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// kanal sahibi → olur (isim yine küçük harfe iner)
	updated, err := svc.Update(context.Background(), 1, 20, &models.UpdateChannelRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "yeni", updated.Name)

	// sunucu sahibi → o da olur
	topic := "sunucu sahibi yazdı"
	_, err = svc.Update(context.Background(), 1, 10, &models.UpdateChannelRequest{Topic: &topic})
	assert.NoError(t, err)
}

func TestDeleteChannel(t *testing.T) {
	store, pub, svc := newChannelFixture()

	require.NoError(t, store.Create(context.Background(), &models.Channel{
		ServerID: 1, OwnerID: 20, Name: "genel",
	}))

	require.NoError(t, svc.Delete(context.Background(), 1, 10)) // sunucu sahibi
	assert.Empty(t, store.channels)
	assert.Equal(t, []string{ws.OpChannelDelete}, pub.ops())
}

func TestListByServerUnknownServer(t *testing.T) {
	_, _, svc := newChannelFixture()

	_, err := svc.ListByServer(context.Background(), 999)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
