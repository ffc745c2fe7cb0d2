package jobs

import (
	"context"

	"github.com/seoworks/indexable/internal/repository"
	"github.com/sirupsen/logrus"
)

// ProminentWordsSweep reports how many posts still need a prominent words
// recomputation, so operators can watch the backlog drain.
type ProminentWordsSweep struct {
	repo      *repository.Repository
	version   int64
	postTypes []string
	cron      string
}

func NewProminentWordsSweep(interval string, repo *repository.Repository, version int64, postTypes []string) *ProminentWordsSweep {
	return &ProminentWordsSweep{
		repo:      repo,
		version:   version,
		postTypes: postTypes,
		cron:      interval,
	}
}

func (s *ProminentWordsSweep) Name() string {
	return "prominent_words_sweep"
}

func (s *ProminentWordsSweep) Schedule() string {
	return s.cron
}

func (s *ProminentWordsSweep) Run() {
	count, err := s.repo.CountPostsWithOutdatedProminentWords(context.Background(), s.version, s.postTypes)
	if err != nil {
		logrus.Errorf("prominent words sweep failed: %v", err)
		return
	}

	logrus.Infof("prominent words: %d posts outdated at version %d", count, s.version)
}
