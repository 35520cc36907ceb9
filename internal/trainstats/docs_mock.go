package trainstats

import (
	"context"

	"github.com/cimtrainer/trainlog/internal/userdata"
)

type mockDocumentSource struct {
	Doc *userdata.Document
	Err error
}

func NewMockDocumentSource(doc *userdata.Document) *mockDocumentSource {
	return &mockDocumentSource{Doc: doc}
}

func (m *mockDocumentSource) Document(_ context.Context) (*userdata.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Doc, nil
}
