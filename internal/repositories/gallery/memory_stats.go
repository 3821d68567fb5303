package gallery

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/models"
)

func (m *MemoryRepository) CountOwnedAlbums(ctx context.Context, user models.User) (int, error) {
	if err := m.statsSubject("count owned albums", user.ID); err != nil {
		return 0, err
	}
	n := 0
	for _, a := range m.albums {
		if a.ownerID == user.ID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryRepository) CountTaggedAlbums(ctx context.Context, user models.User) (int, error) {
	if err := m.statsSubject("count tagged albums", user.ID); err != nil {
		return 0, err
	}
	n := 0
	for _, a := range m.albums {
		for _, p := range a.pictures {
			if _, ok := p.tags[user.ID]; ok {
				n++
				break
			}
		}
	}
	return n, nil
}

func (m *MemoryRepository) CountTags(ctx context.Context, user models.User) (int, error) {
	if err := m.statsSubject("count tags", user.ID); err != nil {
		return 0, err
	}
	n := 0
	for _, a := range m.albums {
		for _, p := range a.pictures {
			if _, ok := p.tags[user.ID]; ok {
				n++
			}
		}
	}
	return n, nil
}

func (m *MemoryRepository) AverageTagsPerAlbum(ctx context.Context, user models.User) (float64, error) {
	albums, err := m.CountTaggedAlbums(ctx, user)
	if err != nil || albums == 0 {
		return 0, err
	}
	tags, err := m.CountTags(ctx, user)
	if err != nil {
		return 0, err
	}
	return float64(tags) / float64(albums), nil
}

func (m *MemoryRepository) TopTaggedUser(ctx context.Context) (models.User, error) {
	if err := m.check("top tagged user"); err != nil {
		return models.User{}, err
	}

	counts := map[int64]int{}
	for _, a := range m.albums {
		for _, p := range a.pictures {
			for id := range p.tags {
				counts[id]++
			}
		}
	}

	var best models.User
	bestCount := 0
	for _, u := range m.users {
		c := counts[u.ID]
		if c > bestCount || (c == bestCount && c > 0 && u.ID < best.ID) {
			best, bestCount = u, c
		}
	}
	if bestCount == 0 {
		return models.User{}, common.NotFound("Tag", nil)
	}
	return best, nil
}

func (m *MemoryRepository) TopTaggedPicture(ctx context.Context) (models.Picture, error) {
	if err := m.check("top tagged picture"); err != nil {
		return models.Picture{}, err
	}

	var best *memPicture
	for _, a := range m.albums {
		for _, p := range a.pictures {
			if len(p.tags) == 0 {
				continue
			}
			if best == nil || len(p.tags) > len(best.tags) ||
				(len(p.tags) == len(best.tags) && p.id < best.id) {
				best = p
			}
		}
	}
	if best == nil {
		return models.Picture{}, common.NotFound("Tag", nil)
	}
	return m.toPicture(best), nil
}

func (m *MemoryRepository) PicturesTaggedByUser(ctx context.Context, user models.User) ([]models.Picture, error) {
	if err := m.statsSubject("pictures tagged by user", user.ID); err != nil {
		return nil, err
	}

	pictures := []models.Picture{}
	for _, a := range m.albums {
		for _, p := range a.pictures {
			if _, ok := p.tags[user.ID]; ok {
				pictures = append(pictures, m.toPicture(p))
			}
		}
	}
	sort.Slice(pictures, func(i, j int) bool { return pictures[i].ID < pictures[j].ID })
	return pictures, nil
}

func (m *MemoryRepository) statsSubject(op string, userID int64) error {
	if err := m.check(op); err != nil {
		return err
	}
	return m.requireUser(userID)
}
