package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-certify/internal/artifacts"
	"github.com/imrishuroy/go-certify/internal/aws"
	"github.com/imrishuroy/go-certify/internal/config"
)

func TestNewArtifactStore_S3(t *testing.T) {
	cfg := &config.Config{ArtifactBackend: config.BackendS3, CertificatesBucket: "svlessicertify"}
	clients, err := aws.NewAWSClients(context.Background(), aws.Settings{})
	require.NoError(t, err)

	store, err := newArtifactStore(context.Background(), cfg, clients)
	require.NoError(t, err)
	assert.IsType(t, &artifacts.S3Store{}, store)
}

func TestNewArtifactStore_OfflineMirrorsToDisk(t *testing.T) {
	cfg := &config.Config{
		Offline:            true,
		ArtifactBackend:    config.BackendS3,
		CertificatesBucket: "svlessicertify",
		DebugDir:           t.TempDir(),
	}
	clients, err := aws.NewAWSClients(context.Background(), aws.Settings{Offline: true})
	require.NoError(t, err)

	store, err := newArtifactStore(context.Background(), cfg, clients)
	require.NoError(t, err)
	assert.IsType(t, &artifacts.DiskMirror{}, store)
}
