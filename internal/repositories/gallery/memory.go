package gallery

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/models"
)

// Fixture sizes seeded by MemoryRepository.Open.
const (
	fixtureUsers           = 5
	fixturePicturesPerUser = 2
)

// MemoryRepository implements DataAccess in process memory. Open seeds a
// small fixture data set and Close drops everything.
type MemoryRepository struct {
	open   bool
	users  []models.User
	albums []*memAlbum

	nextUserID    int64
	nextPictureID int64

	log logging.Logger
}

type memAlbum struct {
	ownerID   int64
	name      string
	createdAt time.Time
	pictures  []*memPicture
}

type memPicture struct {
	id        int64
	name      string
	path      string
	createdAt time.Time
	tags      map[int64]struct{}
}

func NewMemoryRepository(logger logging.Logger) *MemoryRepository {
	if logger == nil {
		logger = logging.Discard()
	}
	return &MemoryRepository{log: logger.With("backend", "memory")}
}

func (m *MemoryRepository) Open(ctx context.Context) error {
	if m.open {
		return nil
	}
	m.reset()
	m.open = true
	m.seed()
	m.log.Info(ctx, "memory store opened", "users", len(m.users), "albums", len(m.albums))
	return nil
}

func (m *MemoryRepository) Close() error {
	m.reset()
	m.open = false
	return nil
}

// Clear drops all data but keeps the id counters running.
func (m *MemoryRepository) Clear(ctx context.Context) error {
	if err := m.check("clear"); err != nil {
		return err
	}
	m.users = nil
	m.albums = nil
	return nil
}

func (m *MemoryRepository) reset() {
	m.users = nil
	m.albums = nil
	m.nextUserID = 1
	m.nextPictureID = 1
}

// seed fills the store with users User_1..User_5, each owning one album with
// two pictures.
func (m *MemoryRepository) seed() {
	for i := 1; i <= fixtureUsers; i++ {
		user := m.addUser(fmt.Sprintf("User_%d", i))

		album := &memAlbum{
			ownerID:   user.ID,
			name:      fmt.Sprintf("Album_%d", user.ID),
			createdAt: models.Now(),
		}
		for j := 1; j <= fixturePicturesPerUser; j++ {
			name := fmt.Sprintf("Picture_%d", j)
			album.pictures = append(album.pictures, m.newPicture(models.Picture{
				Name:      name,
				Path:      "pictures/" + name + ".bmp",
				CreatedAt: models.Now(),
			}))
		}
		m.albums = append(m.albums, album)
	}
}

func (m *MemoryRepository) check(op string) error {
	if !m.open {
		return common.StorageError(op, common.ErrorNotOpen)
	}
	return nil
}

func (m *MemoryRepository) addUser(name string) models.User {
	user := models.User{ID: m.nextUserID, Name: name}
	m.nextUserID++
	m.users = append(m.users, user)
	return user
}

func (m *MemoryRepository) newPicture(p models.Picture) *memPicture {
	mp := &memPicture{
		id:        m.nextPictureID,
		name:      p.Name,
		path:      p.Path,
		createdAt: p.CreatedAt,
		tags:      map[int64]struct{}{},
	}
	m.nextPictureID++
	return mp
}

func (m *MemoryRepository) user(id int64) (models.User, bool) {
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (m *MemoryRepository) requireUser(id int64) error {
	if _, ok := m.user(id); !ok {
		return common.NotFound("User", id)
	}
	return nil
}

// albumByName returns the first album created with the given name.
func (m *MemoryRepository) albumByName(name string) (*memAlbum, error) {
	for _, a := range m.albums {
		if a.name == name {
			return a, nil
		}
	}
	return nil, common.NotFound("Album", name)
}

func (m *MemoryRepository) albumIndex(name string, ownerID int64) int {
	for i, a := range m.albums {
		if a.name == name && a.ownerID == ownerID {
			return i
		}
	}
	return -1
}

func (a *memAlbum) pictureIndex(name string) int {
	for i, p := range a.pictures {
		if p.name == name {
			return i
		}
	}
	return -1
}

func (m *MemoryRepository) picture(albumName, pictureName string) (*memPicture, error) {
	album, err := m.albumByName(albumName)
	if err != nil {
		return nil, err
	}
	i := album.pictureIndex(pictureName)
	if i < 0 {
		return nil, common.NotFound("Picture", pictureName)
	}
	return album.pictures[i], nil
}

// toPicture returns a detached copy with tags resolved to users ordered by id.
func (m *MemoryRepository) toPicture(p *memPicture) models.Picture {
	out := models.Picture{
		ID:          p.id,
		Name:        p.name,
		Path:        p.path,
		CreatedAt:   p.createdAt,
		TaggedUsers: []models.User{},
	}
	ids := make([]int64, 0, len(p.tags))
	for id := range p.tags {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if u, ok := m.user(id); ok {
			out.TagUser(u)
		}
	}
	return out
}

func (m *MemoryRepository) toAlbum(a *memAlbum) models.Album {
	out := models.Album{
		OwnerID:   a.ownerID,
		Name:      a.name,
		CreatedAt: a.createdAt,
		Pictures:  make([]models.Picture, 0, len(a.pictures)),
	}
	if owner, ok := m.user(a.ownerID); ok {
		out.OwnerName = owner.Name
	}
	for _, p := range a.pictures {
		out.AddPicture(m.toPicture(p))
	}
	return out
}
