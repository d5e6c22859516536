package feed

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/supplyhub/supplyhub/internal/vendor"
)

const dialTimeout = 10 * time.Second

// Transport retrieves feed files from a vendor as byte streams. One Transport
// is one logged-in session; Close ends it.
type Transport interface {
	Fetch(path string) (io.ReadCloser, error)
	Close() error
}

// DialFunc opens a Transport for a vendor profile. The Runner takes one so
// tests can substitute an in-memory transport.
type DialFunc func(ctx context.Context, p vendor.Profile) (Transport, error)

type ftpTransport struct {
	conn *ftp.ServerConn
}

// DialFTP connects and logs in to the vendor's FTP endpoint, negotiating
// explicit TLS when the profile requires it.
func DialFTP(ctx context.Context, p vendor.Profile) (Transport, error) {
	addr := p.Host
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
		addr = net.JoinHostPort(addr, "21")
	}

	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(dialTimeout),
	}
	if p.ExplicitTLS {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: host}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("feed: dial %s: %w", addr, err)
	}
	if err := conn.Login(p.User, p.Password); err != nil {
		conn.Quit()
		return nil, fmt.Errorf("feed: login %s: %w", addr, err)
	}
	return &ftpTransport{conn: conn}, nil
}

func (t *ftpTransport) Fetch(path string) (io.ReadCloser, error) {
	resp, err := t.conn.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("feed: retrieve %s: %w", path, err)
	}
	return resp, nil
}

func (t *ftpTransport) Close() error {
	return t.conn.Quit()
}
