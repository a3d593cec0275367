package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage/storage"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage/visualizer"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/services"
)

var (
	envFile         = flag.String("env", ".env", "Path to environment file")
	input           = flag.String("input", "", "ETL/SQL source file, or a directory of source files")
	outputFile      = flag.String("output", "data_lineage_structured.json", "Output file path for the lineage graph")
	reportFile      = flag.String("report", "", "Optional output file for the Markdown report")
	visualize       = flag.Bool("visualize", false, "Generate an HTML visualization of the lineage graph")
	visualizeOutput = flag.String("viz-output", "data_lineage_graph.html", "Output file for the visualization")
	logLevel        = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil {
		logger.Warnf("Error loading env file %s: %v", *envFile, err)
	}

	if err := services.CheckCredentials(); err != nil {
		logger.Fatalf("%v", err)
	}

	if *input == "" {
		logger.Fatal("Input file or directory must be specified")
	}

	files, err := readInputFiles(*input)
	if err != nil {
		logger.Fatalf("Failed to read input: %v", err)
	}
	if len(files) == 0 {
		logger.Fatal("No input files found")
	}

	// Model calls stay sequential; one combined source keeps cross-file
	// lineage visible to the model.
	var sources []string
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Errorf("Failed to read file %s: %v", file, err)
			continue
		}
		sources = append(sources, string(content))
	}

	gateway, err := services.DefaultGateway()
	if err != nil {
		logger.Fatalf("AI service error: %v", err)
	}

	logger.Infof("Mapping lineage for %d input files...", len(files))

	ctx := context.Background()
	result, err := lineage.NewMapper(gateway).Map(ctx, strings.Join(sources, "\n\n---\n\n"))
	if err != nil {
		logger.Fatalf("Failed to map lineage: %v", err)
	}

	if *reportFile != "" {
		if err := os.WriteFile(*reportFile, []byte(result.Report), 0644); err != nil {
			logger.Errorf("Failed to write report: %v", err)
		} else {
			logger.Infof("Report saved to %s", *reportFile)
		}
	}

	if result.Graph == nil {
		diag := "structured lineage unavailable"
		if result.Raw != nil && result.Raw.Error != "" {
			diag = result.Raw.Error
		}
		logger.Fatalf("No lineage graph produced: %s", diag)
	}

	graphStore := storage.NewJSONGraphStore(*outputFile)
	if err := graphStore.StoreGraph(ctx, result.Graph); err != nil {
		logger.Fatalf("Failed to store lineage graph: %v", err)
	}

	logger.Infof("Lineage graph mapped with %d nodes and %d edges",
		len(result.Graph.Nodes), len(result.Graph.Edges))
	logger.Infof("Lineage graph saved to %s", *outputFile)

	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		exportToNeo4j(ctx, logger, result.Graph, uri)
	}

	if *visualize {
		viz, err := visualizer.New()
		if err != nil {
			logger.Fatalf("Failed to create visualizer: %v", err)
		}
		if err := viz.RenderToFile(result.Graph, *visualizeOutput); err != nil {
			logger.Errorf("Failed to visualize lineage graph: %v", err)
		} else {
			logger.Infof("Visualization saved to %s", *visualizeOutput)
		}
	}
}

func exportToNeo4j(ctx context.Context, logger *logrus.Logger, graph *lineage.Graph, uri string) {
	store, err := storage.NewNeo4jStore(uri, os.Getenv("NEO4J_USERNAME"), os.Getenv("NEO4J_PASSWORD"))
	if err != nil {
		logger.Errorf("Failed to connect to Neo4j: %v", err)
		return
	}
	defer store.Close()

	if err := store.StoreGraph(ctx, graph); err != nil {
		logger.Errorf("Failed to export graph to Neo4j: %v", err)
		return
	}
	logger.Infof("Lineage graph exported to Neo4j at %s", uri)
}

// readInputFiles collects source files from the input path.
func readInputFiles(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	supportedExtensions := map[string]bool{
		".sql": true, ".txt": true, ".py": true, ".md": true,
	}

	var files []string
	err = filepath.Walk(input, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			ext := strings.ToLower(filepath.Ext(path))
			if supportedExtensions[ext] {
				files = append(files, path)
			}
		}
		return nil
	})

	return files, err
}
