package storage

import "github.com/0x0042/uniswap-v3-periphery/internal/model"

// Storage defines a sink for rendered descriptor documents.
type Storage interface {
	PutDocumentBatch(docs []model.RenderedDocument) error
}
