// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package cmd

import (
	"errors"
	goflag "flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	crlog "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azmanager"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/config"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/consts"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/logger"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/metrics"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/server"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/vmoperation"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "start-stop-vm",
	Short: "Start or stop an Azure virtual machine by name over HTTP",
	Long: `Serves the StartStopVMHttpTrigger route of an Azure Functions custom handler.
Each request resolves a virtual machine by name in the configured subscription
and begins powering it on or off.`,
	RunE: startServer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var (
	configFile string
	envFile    string
	logFile    string
	port       int
	zapOpts    = zap.Options{}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file, watched for changes")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded into the environment")
	rootCmd.Flags().IntVar(&port, "port", defaultPort(), "The port the server listens on.")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "also write logs to this file, rotated by size")

	zapOpts.BindFlags(goflag.CommandLine)
	rootCmd.Flags().AddGoFlagSet(goflag.CommandLine)
}

// defaultPort honors the port assigned by the Functions host.
func defaultPort() int {
	if p, err := strconv.Atoi(os.Getenv(consts.CustomHandlerPortEnvKey)); err == nil && p > 0 {
		return p
	}
	return consts.DefaultPort
}

// initConfig reads in the dotenv file, config file and ENV variables if set.
func initConfig() {
	if envFile != "" {
		// existing environment variables take precedence
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(os.Stderr, "Error: failed to load env file:", envFile, err)
			os.Exit(1)
		}
	}

	viper.AutomaticEnv() // read in environment variables that match

	if configFile == "" {
		return
	}
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to read config file:", configFile, err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.GetLogger().Info("Config file changed", "file", e.Name, "op", e.Op.String())
	})
	viper.WatchConfig()
}

func startServer(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(&zapOpts, logFile)
	logger.SetDefaultLogger(log)
	crlog.SetLogger(log)
	setupLog := log.WithName("setup")

	cloudConfig := config.LoadCloudConfig(viper.GetViper())
	cloudConfig.TrimSpace()
	if err := cloudConfig.DefaultAndValidate(); err != nil {
		setupLog.Error(err, "cloud configuration is invalid")
		return err
	}
	logCloudConfig(setupLog, cloudConfig)

	factory, err := azureclients.NewAzureClientsFactory(cloudConfig)
	if err != nil {
		setupLog.Error(err, "unable to create azure clients factory")
		return err
	}
	az, err := azmanager.CreateAzureManager(factory)
	if err != nil {
		setupLog.Error(err, "unable to create azure manager")
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(reg)

	srv := server.New(vmoperation.NewHandler(az), server.Options{
		Port: port,
		SubscriptionID: func() string {
			return viper.GetString(consts.SubscriptionIDEnvKey)
		},
		Gatherer: reg,
	}, log.WithName("server"))

	if err := srv.Start(signals.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running server")
		return err
	}
	setupLog.Info("server shutdown")
	return nil
}

// logCloudConfig reports the startup subscription; requests read it again from viper.
func logCloudConfig(logger logr.Logger, cloudConfig *config.CloudConfig) {
	if cloudConfig.SubscriptionID == "" {
		logger.Info("Subscription ID is not configured, requests are rejected until it is set", "cloud", cloudConfig.Cloud)
		return
	}
	logger.Info("Using cloud configuration", "cloud", cloudConfig.Cloud, "subscriptionID", cloudConfig.SubscriptionID)
}
