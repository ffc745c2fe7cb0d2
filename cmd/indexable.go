package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/seoworks/indexable/internal/builder"
	"github.com/seoworks/indexable/internal/config"
	"github.com/seoworks/indexable/internal/content"
	"github.com/seoworks/indexable/internal/hierarchy"
	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/permalink"
	"github.com/seoworks/indexable/internal/queue"
	"github.com/seoworks/indexable/internal/repository"
	"github.com/seoworks/indexable/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getIndexableCmd())
	rootCmd.AddCommand(listIndexablesCmd())
	rootCmd.AddCommand(outdatedCmd())
}

// newRepository wires a repository against the configured database. The CLI
// runs without redis and without a broker.
func newRepository() *repository.Repository {
	cnf := config.LoadConfig()
	gormStore := store.NewGormStore(config.GetDb(cnf))

	events := queue.NewNop()
	indexableBuilder := builder.NewStoreBuilder(gormStore, events)
	resolver := permalink.NewResolver(content.NewStoreSource(gormStore, cnf.SiteURL))
	ancestry := hierarchy.NewRepository(gormStore, indexableBuilder)

	return repository.New(gormStore, indexableBuilder, resolver, ancestry, nil, events)
}

func getIndexableCmd() *cobra.Command {
	var objectType string
	var objectID int64
	var create bool

	command := &cobra.Command{
		Use:   "get",
		Short: "Get the indexable of a content object",
		Run: func(cmd *cobra.Command, args []string) {
			if objectType == "" || objectID == 0 {
				logrus.Error("missing object type or object id")
				return
			}

			repo := newRepository()
			ind, err := repo.FindByIDAndType(context.Background(), objectID, objectType, create)
			if err != nil {
				logrus.Errorf("error getting indexable: %v", err)
				return
			}

			printIndexables([]*model.Indexable{ind})
		},
	}

	command.Flags().StringVarP(&objectType, "type", "t", "", "object type")
	command.Flags().Int64VarP(&objectID, "id", "i", 0, "object id")
	command.Flags().BoolVarP(&create, "create", "c", true, "create the indexable when missing")

	return command
}

func listIndexablesCmd() *cobra.Command {
	var objectType string
	var objectSubType string

	command := &cobra.Command{
		Use:   "list",
		Short: "List indexables by object type",
		Run: func(cmd *cobra.Command, args []string) {
			if objectType == "" {
				logrus.Error("missing object type")
				return
			}

			repo := newRepository()

			var inds []*model.Indexable
			var err error
			if objectSubType != "" {
				inds, err = repo.FindAllByTypeAndSubType(context.Background(), objectType, objectSubType)
			} else {
				inds, err = repo.FindAllByType(context.Background(), objectType)
			}
			if err != nil {
				logrus.Errorf("error listing indexables: %v", err)
				return
			}

			printIndexables(inds)
		},
	}

	command.Flags().StringVarP(&objectType, "type", "t", "", "object type")
	command.Flags().StringVarP(&objectSubType, "subtype", "s", "", "object sub type")

	return command
}

func outdatedCmd() *cobra.Command {
	var version int64
	var types string
	var limit int

	command := &cobra.Command{
		Use:   "outdated",
		Short: "Show posts with outdated prominent words",
		Run: func(cmd *cobra.Command, args []string) {
			repo := newRepository()
			postTypes := strings.Split(types, ",")
			if types == "" {
				postTypes = nil
			}

			count, err := repo.CountPostsWithOutdatedProminentWords(context.Background(), version, postTypes)
			if err != nil {
				logrus.Errorf("error counting outdated posts: %v", err)
				return
			}

			ids, err := repo.FindPostsWithOutdatedProminentWords(context.Background(), version, postTypes, limit)
			if err != nil {
				logrus.Errorf("error finding outdated posts: %v", err)
				return
			}

			color.Yellow("%d posts outdated at version %d", count, version)
			for _, id := range ids {
				fmt.Println(id)
			}
		},
	}

	command.Flags().Int64VarP(&version, "version", "v", 1, "updated prominent words version")
	command.Flags().StringVarP(&types, "types", "t", "post", "comma separated post types")
	command.Flags().IntVarP(&limit, "limit", "l", 10, "max ids to print")

	return command
}

func printIndexables(inds []*model.Indexable) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Object ID", "Type", "Sub Type", "Permalink"})

	for _, ind := range inds {
		objectID := ""
		if ind.ObjectID != nil {
			objectID = strconv.FormatInt(*ind.ObjectID, 10)
		}

		link := ""
		if ind.Permalink != nil {
			link = *ind.Permalink
		}

		table.Append([]string{
			strconv.FormatInt(ind.ID, 10),
			objectID,
			ind.ObjectType,
			ind.ObjectSubType,
			link,
		})
	}

	table.Render()
	color.Green("%d indexables", len(inds))
}
