package httpserver

import "go.uber.org/zap"

type Options func(s *Server)

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) {
		s.Logger = l
	}
}
