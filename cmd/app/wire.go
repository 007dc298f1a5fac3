//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/sameer-hoda/mynextpr-sub001/internal/bootstrap"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/auth"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plangen"
	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/plans"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/config"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/llm/gemini"
	httpiface "github.com/sameer-hoda/mynextpr-sub001/internal/interface/http"
	"github.com/sameer-hoda/mynextpr-sub001/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		providePgxPool,
		provideUserRepository,
		providePlanRepository,
		provideGeminiClient,
		provideArtifactRecorder,
		auth.NewService,
		plangen.NewService,
		plans.NewService,
		wire.Bind(new(plangen.ModelClient), new(*gemini.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
