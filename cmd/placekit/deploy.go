package main

import (
	"fmt"
	"os"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/aellingwood/placekit/internal/deploy"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the asset set to S3",
	Long:  "Upload the generated asset directory to the configured S3 bucket and optionally invalidate CloudFront.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Deploy.S3.Bucket == "" {
			return fmt.Errorf("deploy: no S3 bucket configured (set deploy.s3.bucket)")
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determining project root: %w", err)
		}
		outputDir := filepath.Join(projectRoot, cfg.Output)
		if _, err := os.Stat(outputDir); err != nil {
			return fmt.Errorf("output directory %s not found (run `placekit batch` first)", outputDir)
		}

		ctx := cmd.Context()
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Deploy.S3.Region))
		if err != nil {
			return fmt.Errorf("loading AWS config: %w", err)
		}

		s3Client := deploy.NewAWSS3Client(s3.NewFromConfig(awsCfg), cfg.Deploy.S3.Bucket)
		cfClient := deploy.NewAWSCloudFrontClient(cloudfront.NewFromConfig(awsCfg))

		deployCfg := deploy.Config{
			Bucket:          cfg.Deploy.S3.Bucket,
			Region:          cfg.Deploy.S3.Region,
			Prefix:          cfg.Deploy.S3.Prefix,
			Distribution:    cfg.Deploy.CloudFront.DistributionID,
			InvalidatePaths: cfg.Deploy.CloudFront.InvalidatePaths,
			DryRun:          dryRun,
			Verbose:         verbose,
		}

		result, err := deploy.Deploy(ctx, deployCfg, outputDir, s3Client, cfClient)
		if err != nil {
			return err
		}

		label := "deployed"
		if dryRun {
			label = "deploy plan"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d uploaded, %d deleted, %d unchanged\n",
			successStyle.Render(label), result.Uploaded, result.Deleted, result.Skipped)
		for _, e := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", e)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("deploy finished with %d errors", len(result.Errors))
		}
		return nil
	},
}

func init() {
	deployCmd.Flags().Bool("dry-run", false, "show what would be deployed without deploying")

	rootCmd.AddCommand(deployCmd)
}
