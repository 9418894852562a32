// Package tunnel opens an SSH local-forward used to reach a database
// host that is not directly routable.
package tunnel

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/sync/errgroup"
)

// Config holds SSH tunnel settings.
type Config struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host" mapstructure:"host"`
	Port    int    `yaml:"port" mapstructure:"port"`
	User    string `yaml:"user" mapstructure:"user"`
	KeyPath string `yaml:"key_path" mapstructure:"key_path"`
	// Remote side of the forward, as seen from the SSH host.
	RemoteHost string `yaml:"remote_host" mapstructure:"remote_host"`
	RemotePort int    `yaml:"remote_port" mapstructure:"remote_port"`
	// KnownHostsPath enables host key verification when set.
	KnownHostsPath string `yaml:"known_hosts_path" mapstructure:"known_hosts_path"`
	DialTimeoutSec int    `yaml:"dial_timeout_secs" mapstructure:"dial_timeout_secs"`
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = 22
	}
	if c.RemoteHost == "" {
		c.RemoteHost = "127.0.0.1"
	}
	if c.RemotePort == 0 {
		c.RemotePort = 5432
	}
	if c.DialTimeoutSec == 0 {
		c.DialTimeoutSec = 15
	}
	return c
}

// Tunnel is an open SSH local-forward. Connections accepted on Addr are
// piped to the remote endpoint through the SSH host.
type Tunnel struct {
	client   *ssh.Client
	listener net.Listener
	remote   string

	group     *errgroup.Group
	closeOnce sync.Once
}

// Open dials the SSH host, starts a local listener and begins forwarding.
// Callers must Close the tunnel on every exit path.
func Open(ctx context.Context, cfg Config) (*Tunnel, error) {
	cfg = cfg.withDefaults()

	key, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, eris.Wrapf(err, "tunnel: read private key %s", cfg.KeyPath)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, eris.Wrap(err, "tunnel: parse private key")
	}

	hostKeys := ssh.InsecureIgnoreHostKey() //nolint:gosec // opt-in via known_hosts_path
	if cfg.KnownHostsPath != "" {
		hostKeys, err = knownhosts.New(cfg.KnownHostsPath)
		if err != nil {
			return nil, eris.Wrapf(err, "tunnel: load known hosts %s", cfg.KnownHostsPath)
		}
	}

	sshAddr := net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))
	client, err := ssh.Dial("tcp", sshAddr, &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeys,
		Timeout:         time.Duration(cfg.DialTimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "tunnel: dial %s", sshAddr)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		_ = client.Close()
		return nil, eris.Wrap(err, "tunnel: listen")
	}

	t := &Tunnel{
		client:   client,
		listener: listener,
		remote:   net.JoinHostPort(cfg.RemoteHost, fmt.Sprint(cfg.RemotePort)),
		group:    &errgroup.Group{},
	}
	go t.serve(ctx)

	zap.L().Info("tunnel: connected",
		zap.String("ssh_host", sshAddr),
		zap.String("local", t.Addr()),
		zap.String("remote", t.remote),
	)
	return t, nil
}

// Addr is the local address to connect through the tunnel.
func (t *Tunnel) Addr() string {
	return t.listener.Addr().String()
}

func (t *Tunnel) serve(ctx context.Context) {
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			// Listener closed; forwarding is done.
			return
		}
		t.group.Go(func() error {
			return t.forward(ctx, conn)
		})
	}
}

// forward pipes one local connection to the remote endpoint.
func (t *Tunnel) forward(ctx context.Context, local net.Conn) error {
	defer local.Close() //nolint:errcheck

	remote, err := t.client.DialContext(ctx, "tcp", t.remote)
	if err != nil {
		return eris.Wrapf(err, "tunnel: dial remote %s", t.remote)
	}
	defer remote.Close() //nolint:errcheck

	pair := &errgroup.Group{}
	pair.Go(func() error {
		defer remote.Close() //nolint:errcheck
		_, err := io.Copy(remote, local)
		return err
	})
	pair.Go(func() error {
		defer local.Close() //nolint:errcheck
		_, err := io.Copy(local, remote)
		return err
	})
	return pair.Wait()
}

// Close stops the listener, waits for in-flight forwards, and closes the
// SSH connection.
func (t *Tunnel) Close() error {
	var err error
	t.closeOnce.Do(func() {
		_ = t.listener.Close()
		_ = t.group.Wait()
		err = t.client.Close()
	})
	return err
}
