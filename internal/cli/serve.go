package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Babdus/protolanguage-v2/internal/server"
	"github.com/Babdus/protolanguage-v2/pkg/cache"
	"github.com/Babdus/protolanguage-v2/pkg/observability"
	"github.com/Babdus/protolanguage-v2/pkg/pipeline"
	"github.com/Babdus/protolanguage-v2/pkg/storage"
)

const (
	rendersCollection = "renders"
	serveKeyPrefix    = "dendro:serve:"
)

type serveOpts struct {
	addr     string
	storeDir string
	noCache  bool
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve accepts JSON trees on POST /render and keeps every artifact for later
retrieval at /renders/{id}. Artifacts are stored in MongoDB when
server.mongo_uri (or DENDRO_MONGO_URI) is set, in --store-dir when given,
and in memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.config.Server.Addr
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", ":8080", "listen address")
	f.StringVar(&opts.storeDir, "store-dir", "", "keep artifacts as files in this directory")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	hooks := observability.NewLogHooks(logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	runner, err := c.newRunner(ctx, opts.noCache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), serveKeyPrefix))
	if err != nil {
		return err
	}
	defer runner.Close()

	store, kind, err := c.newStore(ctx, opts.storeDir)
	if err != nil {
		return err
	}
	defer store.Close()

	rc := c.config.Render
	srv := server.New(runner, store, logger,
		server.WithDefaults(pipeline.Options{
			LinkStyle:     rc.LinkStyle,
			Radius:        rc.Radius,
			Margin:        rc.Margin,
			BranchLengths: rc.BranchLengths,
			LeavesAligned: rc.LeavesAligned,
			Logger:        logger,
		}),
		server.WithMaxBodyBytes(c.config.Server.MaxBodyBytes),
	)

	printInfo("Serving on %s", opts.addr)
	printKeyValue("store", kind)
	printKeyValue("cache", c.config.Cache.Backend)
	printKeyValue("link style", rc.LinkStyle)
	return srv.ListenAndServe(ctx, opts.addr)
}

// newStore picks the artifact store and returns its kind for display.
func (c *CLI) newStore(ctx context.Context, dir string) (storage.Store, string, error) {
	sc := c.config.Server
	switch {
	case sc.MongoURI != "":
		s, err := storage.NewMongoStore(ctx, storage.MongoOptions{
			URI:        sc.MongoURI,
			Database:   sc.MongoDatabase,
			Collection: rendersCollection,
		})
		return s, "mongo:" + sc.MongoDatabase, err
	case dir != "":
		s, err := storage.NewFileStore(dir)
		return s, "file:" + dir, err
	default:
		return storage.NewMemoryStore(), "memory", nil
	}
}
