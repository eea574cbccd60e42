package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/tierhive/billing/internal/app/api/server"
	"github.com/tierhive/billing/internal/app/scheduler"
	"github.com/tierhive/billing/internal/app/service/notify"
	"github.com/tierhive/billing/internal/app/service/payout"
	"github.com/tierhive/billing/internal/app/service/provider"
	"github.com/tierhive/billing/internal/app/service/publication"
	"github.com/tierhive/billing/internal/app/service/tierswitch"
	"github.com/tierhive/billing/internal/platform/db"
	"github.com/tierhive/billing/pkg/config"
	"github.com/tierhive/billing/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	notify.Module,
	tierswitch.Module,
	provider.Module,
	payout.Module,
	publication.Module,
	scheduler.Module,
	server.Module,
)
