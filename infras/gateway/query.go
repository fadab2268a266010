package gateway

import (
	"context"
	"fmt"
	"hotelops/shared/constant"
	"hotelops/shared/dto"
	"hotelops/shared/logger"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

const setArgPrefix = "set_"

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func validIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func (g *gatewayImpl) checkTable(table string) error {
	if !g.tables[table] {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	return nil
}

func checkColumns(columns ...string) error {
	for _, column := range columns {
		if !validIdentifier(column) {
			return fmt.Errorf("%w: %q", ErrInvalidColumn, column)
		}
	}

	return nil
}

func whereClause(filter dto.FilterGroup) (string, map[string]any, error) {
	if err := checkColumns(filter.Fields()...); err != nil {
		return "", nil, err
	}

	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}, nil
	}

	return " WHERE " + where, args, nil
}

func buildSelect(table string, filter dto.FilterGroup, params dto.QueryParams) (string, map[string]any, error) {
	where, args, err := whereClause(filter)
	if err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s%s", table, where)

	if params.SortBy != "" {
		if err := checkColumns(params.SortBy); err != nil {
			return "", nil, err
		}

		dir := dto.SortDirAsc
		if strings.EqualFold(params.SortDir, dto.SortDirDesc) {
			dir = dto.SortDirDesc
		}

		query += fmt.Sprintf(" ORDER BY %s %s", params.SortBy, dir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		query += " LIMIT :limit"

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			query += " OFFSET :offset"
		}
	}

	return query, args, nil
}

func buildInsert(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		placeholders[i] = ":" + column
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

func buildUpdate(table string, patch map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	if len(patch) == 0 {
		return "", nil, ErrEmptyPatch
	}

	if filter.Empty() {
		return "", nil, ErrRequiredFilter
	}

	columns := slices.Sorted(maps.Keys(patch))
	if err := checkColumns(columns...); err != nil {
		return "", nil, err
	}

	where, args, err := whereClause(filter)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, len(columns))
	for i, column := range columns {
		sets[i] = fmt.Sprintf("%s = :%s%s", column, setArgPrefix, column)
		args[setArgPrefix+column] = patch[column]
	}

	return fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(sets, ", "), where), args, nil
}

// insertColumns lists the db tags of a record type, embedded structs included.
func insertColumns(reflectType reflect.Type) []string {
	columns := []string{}

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)
		dbTag := field.Tag.Get("db")

		if field.Anonymous && field.Type.Kind() == reflect.Struct && dbTag == "" {
			columns = append(columns, insertColumns(field.Type)...)

			continue
		}

		if dbTag == "" || dbTag == "-" {
			continue
		}

		columns = append(columns, dbTag)
	}

	return columns
}

// recordType returns the struct type behind a record or a slice of records.
func recordType(records any) (reflect.Type, int, error) {
	value := reflect.Indirect(reflect.ValueOf(records))

	switch value.Kind() {
	case reflect.Struct:
		return value.Type(), 1, nil
	case reflect.Slice, reflect.Array:
		elem := value.Type().Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}

		if elem.Kind() != reflect.Struct {
			return nil, 0, fmt.Errorf("records must be structs, got %s", elem.Kind())
		}

		return elem, value.Len(), nil
	default:
		return nil, 0, fmt.Errorf("records must be a struct or slice, got %s", value.Kind())
	}
}

func (g *gatewayImpl) Select(ctx context.Context, table string, filter dto.FilterGroup, params dto.QueryParams, dest any) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Select")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelTableAttributeKey, table)

	if err = g.checkTable(table); err != nil {
		return err
	}

	query, args, err := buildSelect(table, filter, params)
	if err != nil {
		return err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := g.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to prepare select (%s): %w", table, err)
	}
	defer prepare.Close()

	switch reflect.Indirect(reflect.ValueOf(dest)).Kind() {
	case reflect.Slice:
		err = prepare.SelectContext(ctx, dest, args)
	case reflect.Struct:
		err = prepare.GetContext(ctx, dest, args)
	default:
		return ErrInvalidDestination
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to select (%s): %w", table, err)
	}

	return nil
}

func (g *gatewayImpl) Insert(ctx context.Context, table string, records any, dest any) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelTableAttributeKey, table)

	if err = g.checkTable(table); err != nil {
		return err
	}

	typ, count, err := recordType(records)
	if err != nil {
		return err
	}

	if count == 0 {
		return nil
	}

	query := buildInsert(table, insertColumns(typ))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, g.db.Write, query, records)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to insert (%s): %w", table, err)
	}
	defer rows.Close()

	if dest == nil {
		return nil
	}

	switch reflect.Indirect(reflect.ValueOf(dest)).Kind() {
	case reflect.Slice:
		err = sqlx.StructScan(rows, dest)
	case reflect.Struct:
		if rows.Next() {
			err = rows.StructScan(dest)
		}
	default:
		return ErrInvalidDestination
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to scan inserted rows (%s): %w", table, err)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("failed to read inserted rows (%s): %w", table, err)
	}

	return nil
}

func (g *gatewayImpl) Update(ctx context.Context, table string, patch map[string]any, filter dto.FilterGroup) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelTableAttributeKey, table)

	if err = g.checkTable(table); err != nil {
		return err
	}

	query, args, err := buildUpdate(table, patch, filter)
	if err != nil {
		return err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := g.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to update (%s): %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows (%s): %w", table, err)
	}

	if affected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
