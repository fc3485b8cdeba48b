package storage

import (
	"context"
	"errors"
	"testing"
)

func TestFileKVCicloCompleto(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("crear almacén: %v", err)
	}

	if _, err := kv.Get(ctx, KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("clave ausente debe dar ErrNotFound, obtenido %v", err)
	}

	if err := kv.Set(ctx, KeyToken, "tok-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, err := kv.Get(ctx, KeyToken)
	if err != nil || val != "tok-123" {
		t.Fatalf("get: val=%q err=%v", val, err)
	}

	if err := kv.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatal("la clave borrada no debe existir")
	}

	// Borrar una clave inexistente no es error.
	if err := kv.Delete(ctx, "consola:nada"); err != nil {
		t.Fatalf("delete idempotente: %v", err)
	}
}

func TestFileKVSobreviveReapertura(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("crear almacén: %v", err)
	}
	if err := kv.Set(ctx, KeyNavPrincipal, "true"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reabierto, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("reabrir: %v", err)
	}
	val, err := reabierto.Get(ctx, KeyNavPrincipal)
	if err != nil || val != "true" {
		t.Fatalf("el estado debe sobrevivir al reinicio: val=%q err=%v", val, err)
	}
}
