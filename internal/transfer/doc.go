package transfer

// Package transfer runs file transfers into a destination directory. HTTP(S)
// sources are fetched through go-retryablehttp; anything else is treated as
// a local path and copied. The service bounds how many transfers run at
// once, queues the rest in FIFO order, and reports throttled progress to a
// single update callback.
