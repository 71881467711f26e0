package app

import (
	"errors"

	"github.com/vk/metrograph/internal/config"
)

// Options holds everything an App needs for one run.
type Options struct {
	Settings *config.Config

	// From and To request a one-shot route query.
	From string
	To   string
	// Serve runs the HTTP API until the run context is cancelled.
	Serve bool
	// Remote sends queries to a running server instead of a local map.
	Remote string
	// Watch prints map changes from Remote until the run context ends.
	Watch bool
}

// Query reports whether a route query was requested.
func (o *Options) Query() bool {
	return o.From != "" || o.To != ""
}

// Validate checks that the requested modes fit together.
func (o *Options) Validate() error {
	if o.Settings == nil {
		return errors.New("settings are required")
	}
	if (o.From == "") != (o.To == "") {
		return errors.New("-from and -to must be given together")
	}
	if o.Remote != "" {
		if o.Serve {
			return errors.New("-remote cannot be combined with -serve")
		}
		if !o.Query() && !o.Watch {
			return errors.New("-remote needs -from/-to or -watch")
		}
		return nil
	}
	if o.Watch {
		return errors.New("-watch requires -remote")
	}
	if o.Query() && o.Settings.Feed == "" {
		return errors.New("a route query needs a feed")
	}
	return nil
}
