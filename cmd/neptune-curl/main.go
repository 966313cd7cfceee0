// neptune-curl signs an HTTP request for an IAM-authenticated Neptune
// endpoint and either sends it or prints the computed auth headers.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/hengadev/neptunesign"
)

const version = "0.3.0"

type headerFlags []string

func (h *headerFlags) String() string {
	return strings.Join(*h, ", ")
}

func (h *headerFlags) Set(value string) error {
	if !strings.Contains(value, ":") {
		return fmt.Errorf("header must be in 'Name: value' form, got %q", value)
	}
	*h = append(*h, value)
	return nil
}

func main() {
	fs := flag.NewFlagSet("neptune-curl", flag.ExitOnError)

	method := fs.String("X", http.MethodGet, "HTTP method")
	data := fs.String("d", "", "Request body (or @file to read it from a file)")
	region := fs.String("region", "", "Signing region (overrides config file and environment)")
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	envFile := fs.String("env-file", ".env", "Path to a .env file with environment overrides")
	accessKey := fs.String("access-key", "", "Static AWS access key id (default: AWS config chain)")
	secretKey := fs.String("secret-key", "", "Static AWS secret access key")
	sessionToken := fs.String("session-token", "", "Static AWS session token")
	timeout := fs.Duration("timeout", 30*time.Second, "Request timeout")
	dryRun := fs.Bool("dry-run", false, "Sign the request and print its headers without sending it")
	showVersion := fs.Bool("version", false, "Show version information")

	var headers headerFlags
	fs.Var(&headers, "H", "Request header in 'Name: value' form (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <url>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Signs a request with SigV4 for the %s service and sends it.\n\n", neptunesign.ServiceName)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("neptune-curl %s\n", version)
		return
	}

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	rawURL := fs.Arg(0)

	// Overrides from a .env file apply before the environment is read.
	// A missing default file is not an error.
	if err := godotenv.Load(*envFile); err != nil && *envFile != ".env" {
		fatalf("load env file %s: %v", *envFile, err)
	}

	ctx := context.Background()
	if err := run(ctx, rawURL, *method, *data, headers, *region, *configPath,
		*accessKey, *secretKey, *sessionToken, *timeout, *dryRun); err != nil {
		fatalf("%v", err)
	}
}

func run(ctx context.Context, rawURL, method, data string, headers headerFlags,
	region, configPath, accessKey, secretKey, sessionToken string,
	timeout time.Duration, dryRun bool) error {

	fileCfg, err := loadFileConfig(configPath)
	if err != nil {
		return err
	}

	opts, err := signerOptions(ctx, fileCfg, region, accessKey, secretKey, sessionToken)
	if err != nil {
		return err
	}

	signer, err := neptunesign.NewHTTPSigner(opts...)
	if err != nil {
		return err
	}

	req, err := buildRequest(ctx, method, rawURL, data, headers)
	if err != nil {
		return err
	}

	if err := signer.SignRequest(ctx, req); err != nil {
		return err
	}

	if dryRun {
		printHeaders(req)
		return nil
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	fmt.Printf("%s %s\n", resp.Proto, resp.Status)
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	os.Stdout.Write(body)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		fmt.Println()
	}
	return nil
}

func buildRequest(ctx context.Context, method, rawURL, data string, headers headerFlags) (*http.Request, error) {
	var body io.Reader
	if data != "" {
		if strings.HasPrefix(data, "@") {
			raw, err := os.ReadFile(data[1:])
			if err != nil {
				return nil, fmt.Errorf("read body file: %w", err)
			}
			body = strings.NewReader(string(raw))
		} else {
			body = strings.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for _, header := range headers {
		name, value, _ := strings.Cut(header, ":")
		req.Header.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	// A fresh id per invocation; set before signing so it is covered
	// by the signature.
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req, nil
}

func signerOptions(ctx context.Context, fileCfg fileConfig, region,
	accessKey, secretKey, sessionToken string) ([]neptunesign.Option, error) {

	if region == "" {
		region = fileCfg.Region
	}

	var opts []neptunesign.Option

	if accessKey != "" || secretKey != "" {
		if accessKey == "" || secretKey == "" {
			return nil, fmt.Errorf("-access-key and -secret-key must be provided together")
		}
		opts = append(opts,
			neptunesign.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken)))

		if region == "" {
			envCfg, err := neptunesign.LoadConfigFromEnvironment()
			if err != nil {
				return nil, err
			}
			region = envCfg.Region
		}
		opts = append(opts, neptunesign.WithRegion(region))
	} else {
		awsOpts, err := neptunesign.LoadDefaultAWSOptions(ctx, region)
		if err != nil {
			return nil, err
		}
		opts = append(opts, awsOpts...)
	}

	if fileCfg.MaxBodyBytes > 0 {
		opts = append(opts, neptunesign.WithMaxBodyBytes(fileCfg.MaxBodyBytes))
	}

	return opts, nil
}

func printHeaders(req *http.Request) {
	fmt.Printf("%s %s\n", req.Method, req.URL.String())
	fmt.Printf("%s: %s\n", neptunesign.HostHeaderName, req.Host)
	for _, name := range []string{
		neptunesign.AmzDateHeaderName,
		neptunesign.AuthorizationHeaderName,
		neptunesign.SecurityTokenHeaderName,
	} {
		if value := req.Header.Get(name); value != "" {
			fmt.Printf("%s: %s\n", name, value)
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "neptune-curl: "+format+"\n", args...)
	os.Exit(1)
}
