package cmd

import (
	"fmt"

	httpin "clearance/internal/adapters/in/http"
	"clearance/internal/adapters/out/filestore"
	"clearance/internal/adapters/out/notify"
	"clearance/internal/adapters/out/postgres"
	"clearance/internal/adapters/out/postgres/auditrepo"
	"clearance/internal/adapters/out/postgres/jobrepo"
	"clearance/internal/adapters/out/userdir"
	"clearance/internal/core/application/usecases/commands"
	"clearance/internal/core/application/usecases/queries"
	"clearance/internal/core/ports"
	"clearance/internal/jobs"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. Each Create* method hands
// out a ready handler; shared collaborators (scheduler, notifier, effect
// applier) are built once.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	jobStore  ports.JobStore
	scheduler ports.Scheduler
	notifier  ports.Notifier
	auditLog  ports.AuditLog
	directory ports.UserDirectory
	fileStore ports.FileStore
	effects   commands.EffectApplier

	log zerolog.Logger
}

// NewCompositionRoot builds the object graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, log zerolog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		log:        log,
	}

	root.jobStore = jobrepo.NewGormJobStore(gormDB)
	root.auditLog = auditrepo.NewGormAuditLog(gormDB)

	scheduler, err := jobs.NewDurableScheduler(root.jobStore)
	if err != nil {
		return nil, err
	}
	root.scheduler = scheduler

	root.notifier, err = buildNotifier(config, log)
	if err != nil {
		return nil, err
	}

	root.directory, err = buildDirectory(config, log)
	if err != nil {
		return nil, err
	}

	root.fileStore, err = filestore.NewLocalStore(config.AttachmentDir, config.AttachmentBaseURL)
	if err != nil {
		return nil, fmt.Errorf("build file store: %w", err)
	}

	// Effect repositories deliberately run on the base connection: job
	// handles are recorded after the transition committed.
	baseUoW := root.uowFactory.Create()
	root.effects = commands.NewEffectApplier(
		root.auditLog,
		root.notifier,
		root.scheduler,
		baseUoW.OrderRepository(),
		baseUoW.BidRepository(),
		log,
	)

	return root, nil
}

func buildNotifier(config Config, log zerolog.Logger) (ports.Notifier, error) {
	if config.NotifyGatewayURL == "" {
		return notify.NewLogNotifier(log), nil
	}

	notifier, err := notify.NewGatewayNotifier(config.NotifyGatewayURL, log)
	if err != nil {
		return nil, fmt.Errorf("build notifier: %w", err)
	}
	return notifier, nil
}

func buildDirectory(config Config, log zerolog.Logger) (ports.UserDirectory, error) {
	client, err := userdir.NewClient(config.UserDirectoryURL)
	if err != nil {
		return nil, fmt.Errorf("build user directory client: %w", err)
	}

	if config.RedisAddr == "" {
		return client, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	cached, err := userdir.NewCachedDirectory(client, redisClient, config.UserCacheTTL, log)
	if err != nil {
		return nil, fmt.Errorf("build user directory cache: %w", err)
	}
	return cached, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) biddingUoWFactory() commands.BiddingUoWFactory {
	return FuncBiddingUoWFactory(func() commands.BiddingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) reviewUoWFactory() commands.ReviewUoWFactory {
	return FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	return commands.NewSubmitBidCommandHandler(c.biddingUoWFactory(), c.effects, c.log)
}

func (c *CompositionRoot) CreateAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	return commands.NewAcceptBidCommandHandler(c.biddingUoWFactory(), c.effects, c.log)
}

func (c *CompositionRoot) CreateMarkCheckpointCommandHandler() commands.MarkCheckpointCommandHandler {
	return commands.NewMarkCheckpointCommandHandler(c.orderUoWFactory(), c.effects, c.log)
}

func (c *CompositionRoot) CreateCompleteExecutionCommandHandler() commands.CompleteExecutionCommandHandler {
	return commands.NewCompleteExecutionCommandHandler(c.biddingUoWFactory(), c.effects, c.log)
}

func (c *CompositionRoot) CreateCancelExecutionCommandHandler() commands.CancelExecutionCommandHandler {
	return commands.NewCancelExecutionCommandHandler(c.orderUoWFactory(), c.effects, c.log)
}

func (c *CompositionRoot) CreateReviewExecutionCommandHandler() commands.ReviewExecutionCommandHandler {
	return commands.NewReviewExecutionCommandHandler(c.reviewUoWFactory(), c.effects, c.log)
}

func (c *CompositionRoot) CreateReviewTransferCommandHandler() commands.ReviewTransferCommandHandler {
	return commands.NewReviewTransferCommandHandler(c.reviewUoWFactory(), c.effects, c.log)
}

func (c *CompositionRoot) CreateRouteBackCommandHandler() commands.RouteBackCommandHandler {
	return commands.NewRouteBackCommandHandler(c.biddingUoWFactory(), c.effects, c.log)
}

func (c *CompositionRoot) CreateGetOrdersPageQueryHandler() queries.GetOrdersPageQueryHandler {
	return queries.NewGetOrdersPageQueryHandler(c.gormDB, c.directory, c.log)
}

func (c *CompositionRoot) CreateGetBrokerStatsQueryHandler() queries.GetBrokerStatsQueryHandler {
	return queries.NewGetBrokerStatsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the inbound REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateSubmitBidCommandHandler(),
		c.CreateAcceptBidCommandHandler(),
		c.CreateMarkCheckpointCommandHandler(),
		c.CreateCompleteExecutionCommandHandler(),
		c.CreateCancelExecutionCommandHandler(),
		c.CreateReviewExecutionCommandHandler(),
		c.CreateReviewTransferCommandHandler(),
		c.CreateRouteBackCommandHandler(),
		c.CreateGetOrdersPageQueryHandler(),
		c.CreateGetBrokerStatsQueryHandler(),
		c.fileStore,
	)
}

// CreateJobManager assembles the background reminder dispatcher.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	reminderJob, err := jobs.NewExpiryReminderJob(
		c.jobStore,
		c.uowFactory.Create().OrderRepository(),
		c.notifier,
		c.log,
	)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(reminderJob, c.log), nil
}

// The types below adapt closures to the factory interfaces the handlers expect.

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBiddingUoWFactory func() commands.BiddingUoW

func (f FuncBiddingUoWFactory) Create() commands.BiddingUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}
