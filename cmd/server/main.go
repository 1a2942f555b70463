package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"os"

	"latticenoise/internal/explorer"
	"latticenoise/internal/noise"
	"latticenoise/internal/server"
)

const (
	defaultAddr = ":2222"
	hostKeyPath = "host_key"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	addr := flag.String("addr", defaultAddr, "listen address (PORT env overrides the port)")
	hostKey := flag.String("hostkey", hostKeyPath, "path to the ed25519 host key, generated if missing")
	configPath := flag.String("config", "", "noise config JSON (default: built-in defaults)")
	flag.Parse()

	// Generate host key if it doesn't exist
	if err := ensureHostKey(*hostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	cfg := noise.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = noise.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
	}
	log.Printf("Noise source: %s (octaves=%d frequency=%g lacunarity=%g persistence=%g)",
		cfg.Source, cfg.Octaves, cfg.Frequency, cfg.Lacunarity, cfg.Persistence)

	loop, err := explorer.NewLoop(cfg)
	if err != nil {
		log.Fatalf("Explorer error: %v", err)
	}

	// Start loop in background
	go loop.Run()
	defer loop.Stop()

	// Start SSH server (blocks)
	listenAddr := *addr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, *hostKey, loop)
	log.Printf("Starting noise explorer, connect with: ssh -t -p %s YourName@localhost", listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
