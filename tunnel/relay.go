package tunnel

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Relay copies bytes between client and remote in both directions until
// either side closes or errors. The first direction to finish closes both
// connections, which unblocks the other direction; both are joined before
// Relay returns. Canceling ctx also closes both connections.
func Relay(ctx context.Context, client, remote net.Conn) (upload, download int64, err error) {
	var closeOnce sync.Once
	closeBoth := func() {
		closeOnce.Do(func() {
			_ = client.Close()
			_ = remote.Close()
		})
	}
	defer closeBoth()

	stop := context.AfterFunc(ctx, closeBoth)
	defer stop()

	var g errgroup.Group

	g.Go(func() error {
		n, copyErr := io.Copy(remote, client)
		upload = n
		closeBoth()
		return copyErr
	})

	g.Go(func() error {
		n, copyErr := io.Copy(client, remote)
		download = n
		closeBoth()
		return copyErr
	})

	err = g.Wait()
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		// The losing direction always reports its deliberately closed socket.
		err = nil
	}
	return upload, download, err
}
