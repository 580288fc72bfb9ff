package services

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type fakeSearcher struct {
	queries []string
	result  string
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

type fakeProvider struct {
	systemPrompt string
	history      []TranslatedEntry
	sessions     int
	session      *fakeSession
}

func (f *fakeProvider) NewSession(systemPrompt string, history []TranslatedEntry) ModelSession {
	f.systemPrompt = systemPrompt
	f.history = append([]TranslatedEntry(nil), history...)
	f.sessions++
	return f.session
}

type fakeSession struct {
	messages []string
	reply    string
	err      error
	block    bool
	panicMsg string
}

func (f *fakeSession) SendMessage(ctx context.Context, message string) (string, error) {
	f.messages = append(f.messages, message)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
