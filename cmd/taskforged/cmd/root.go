package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/pkg/config"
	"github.com/taskforge/taskforge/pkg/taskforge"
	"github.com/taskforge/taskforge/pkg/tfdb"
	"github.com/taskforge/taskforge/pkg/tfdb/stor"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskforged",
	Short: "Run the taskforge API server",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		c := config.MustLoadFromDotenv()

		db := tfdb.MustConnectToDB()
		if err := tfdb.RunMigrations(db); err != nil {
			log.Fatalf("Unable to run migrations: %s", err)
		}

		stors := stor.NewGormStors(db)
		services := taskforge.NewServices(stors)

		setupRoutes(e, RouteOpts{
			services: services,
			userStor: stors.UserStor,
		})

		port := c.GetKeyWithDefault("TASKFORGE_PORT", "1370")
		log.Infof("Starting taskforged on port %s", port)

		if err := e.Start(":" + port); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
